package reconcile

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/secstmt/pkg/compare"
	"github.com/yurifrl/secstmt/pkg/models"
)

// Status is the reconciliation result of one block or page.
type Status int

const (
	Balanced Status = iota
	Unbalanced
)

func (s Status) String() string {
	if s == Balanced {
		return "balanced"
	}
	return "unbalanced"
}

// Entry summarises one block or page.
type Entry struct {
	Reference string
	Subject   string
	Kind      models.Kind
	Opening   decimal.Decimal
	Movement  decimal.Decimal
	Closing   decimal.Decimal
	Count     int
	Status    Status
}

// Report lists an entry per block and page, in envelope order.
type Report struct {
	Items []Entry
}

// Build summarises envelopes without failing, so callers can display
// results that were already validated during parsing.
func Build(envelopes []*models.Envelope) *Report {
	report := &Report{}
	for _, env := range envelopes {
		for _, b := range env.Blocks {
			report.add(env.Reference, b.ISIN, b.Opening, b.Transactions, b.Closing)
		}
		for _, p := range env.Pages {
			report.add(env.Reference, strconv.Itoa(p.Number), p.Opening, p.Transactions, p.Closing)
		}
	}
	return report
}

func (r *Report) add(reference, subject string, opening models.Quantity, txs []models.Transaction, closing models.Quantity) {
	movement := Sum(txs)
	status := Balanced
	if !compare.Values(opening.Kind, opening.Value.Add(movement), closing.Value) {
		status = Unbalanced
	}
	r.Items = append(r.Items, Entry{
		Reference: reference,
		Subject:   subject,
		Kind:      opening.Kind,
		Opening:   opening.Value,
		Movement:  movement,
		Closing:   closing.Value,
		Count:     len(txs),
		Status:    status,
	})
}

// BalancedCount returns how many entries reconcile.
func (r *Report) BalancedCount() int {
	n := 0
	for _, e := range r.Items {
		if e.Status == Balanced {
			n++
		}
	}
	return n
}
