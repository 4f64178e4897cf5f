package compare

import (
	"github.com/shopspring/decimal"

	"github.com/yurifrl/secstmt/pkg/models"
)

// Equal compares two quantities of the same kind. UNIT values must match
// exactly; FAMT and AMOR values are compared on their two-decimal rendering
// so that sub-cent residue never produces a mismatch.
func Equal(a, b models.Quantity) bool {
	if a.Kind != b.Kind {
		return false
	}
	return Values(a.Kind, a.Value, b.Value)
}

// Values compares two raw values under kind's precision rules.
func Values(kind models.Kind, a, b decimal.Decimal) bool {
	if kind.Decimal() {
		return a.StringFixed(2) == b.StringFixed(2)
	}
	return a.Equal(b)
}
