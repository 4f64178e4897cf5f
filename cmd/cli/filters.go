package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/secstmt/pkg/csv"
)

type filters struct {
	startDate string
	endDate   string
	minAmount float64
	maxAmount float64
	subject   string
	reference string
}

const filterDateLayout = "2006-01-02"

func (f *filters) validate() error {
	for _, d := range []string{f.startDate, f.endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(filterDateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", d)
		}
	}
	return nil
}

// toFilterFunc returns nil when no filter is set.
func (f *filters) toFilterFunc() csv.FilterFunc[csv.Movement] {
	if *f == (filters{}) {
		return nil
	}
	return func(m csv.Movement) bool {
		// Dates share one layout, so they compare as strings.
		if f.startDate != "" && m.Date() < f.startDate {
			return false
		}
		if f.endDate != "" && m.Date() > f.endDate {
			return false
		}
		if f.minAmount != 0 && m.Amount().LessThan(decimal.NewFromFloat(f.minAmount)) {
			return false
		}
		if f.maxAmount != 0 && m.Amount().GreaterThan(decimal.NewFromFloat(f.maxAmount)) {
			return false
		}
		if f.subject != "" && m.Subject != f.subject {
			return false
		}
		if f.reference != "" && m.Reference != f.reference {
			return false
		}
		return true
	}
}
