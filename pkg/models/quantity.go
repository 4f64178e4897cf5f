package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the declared unit of a quantity or amount.
type Kind string

const (
	KindUnit       Kind = "UNIT"
	KindFaceAmount Kind = "FAMT"
	KindAmortized  Kind = "AMOR"
)

// Kinds lists every recognised kind in catalog order.
var Kinds = []Kind{KindUnit, KindFaceAmount, KindAmortized}

func (k Kind) Valid() bool {
	switch k {
	case KindUnit, KindFaceAmount, KindAmortized:
		return true
	}
	return false
}

// Decimal reports whether values of this kind carry a fractional part.
func (k Kind) Decimal() bool {
	return k == KindFaceAmount || k == KindAmortized
}

// Quantity is a signed value tagged with its kind. UNIT values are always
// whole numbers.
type Quantity struct {
	Kind  Kind            `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

func NewQuantity(kind Kind, value decimal.Decimal) Quantity {
	return Quantity{Kind: kind, Value: value}
}

// String renders q the way it appears in a statement, e.g. "FAMT/N12,50".
func (q Quantity) String() string {
	var b strings.Builder
	b.WriteString(string(q.Kind))
	b.WriteString("/")
	v := q.Value
	if v.IsNegative() {
		b.WriteString("N")
		v = v.Neg()
	}
	if q.Kind.Decimal() {
		b.WriteString(strings.Replace(v.StringFixed(2), ".", ",", 1))
	} else {
		b.WriteString(v.String())
	}
	return b.String()
}
