package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/secstmt/pkg/errs"
	"github.com/yurifrl/secstmt/pkg/models"
)

var (
	unitAmount    = regexp.MustCompile(`^\d+$`)
	decimalAmount = regexp.MustCompile(`^\d+,\d+$`)
)

var kindCodes = func() []string {
	codes := make([]string, len(models.Kinds))
	for i, k := range models.Kinds {
		codes[i] = string(k)
	}
	return codes
}()

// Decode interprets raw under kind: UNIT takes whole numbers only, FAMT and
// AMOR take digits with a decimal comma. A debit marker negates the result.
// Values are kept exact; no rounding happens here.
func Decode(line int, kind models.Kind, debit bool, raw string) (models.Quantity, error) {
	var (
		value decimal.Decimal
		err   error
	)
	switch kind {
	case models.KindUnit:
		if !unitAmount.MatchString(raw) {
			return models.Quantity{}, &errs.TypeError{At: line, Expected: "integer", Got: raw}
		}
		value, err = decimal.NewFromString(raw)
		if err != nil {
			return models.Quantity{}, &errs.TypeError{At: line, Expected: "integer", Got: raw}
		}
	case models.KindFaceAmount, models.KindAmortized:
		if !decimalAmount.MatchString(raw) {
			return models.Quantity{}, &errs.TypeError{At: line, Expected: "float", Got: raw}
		}
		value, err = decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
		if err != nil {
			return models.Quantity{}, &errs.TypeError{At: line, Expected: "float", Got: raw}
		}
	default:
		return models.Quantity{}, &errs.CodeError{At: line, Got: string(kind), Allowed: kindCodes}
	}
	if debit {
		value = value.Neg()
	}
	return models.NewQuantity(kind, value), nil
}
