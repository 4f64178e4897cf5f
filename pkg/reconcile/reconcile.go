// Package reconcile checks that declared balances agree with the movements
// between them, inside a block or page and across the pages of a statement.
package reconcile

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/secstmt/pkg/compare"
	"github.com/yurifrl/secstmt/pkg/errs"
	"github.com/yurifrl/secstmt/pkg/models"
)

// Sum adds the movements of txs. Each movement carries the sign convention
// of its own layout (see models.Transaction.Movement).
func Sum(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Movement())
	}
	return total
}

// Block verifies closing == opening + Σ movements for one instrument.
func Block(b *models.InstrumentBlock) error {
	return balance(b.ISIN, b.ClosingLine, b.Opening, b.Transactions, b.Closing)
}

// Page verifies closing == opening + Σ movements for one statement page.
func Page(p *models.Page) error {
	return balance(strconv.Itoa(p.Number), p.ClosingLine, p.Opening, p.Transactions, p.Closing)
}

func balance(subject string, line int, opening models.Quantity, txs []models.Transaction, closing models.Quantity) error {
	if closing.Kind != opening.Kind {
		return &errs.ValidationError{At: line, Subject: subject, Reason: errs.KindKindMismatch}
	}
	for _, tx := range txs {
		if tx.Quantity.Kind != opening.Kind {
			return &errs.ValidationError{At: tx.Line, Subject: subject, Reason: errs.KindKindMismatch}
		}
	}
	expected := models.NewQuantity(opening.Kind, opening.Value.Add(Sum(txs)))
	if !compare.Equal(expected, closing) {
		return &errs.ValidationError{At: line, Subject: subject, Reason: errs.KindBalanceMismatch}
	}
	return nil
}

// Extend folds a continuation block into an existing block for the same
// ISIN. The continuation must open where the existing block closed; its
// movements are appended and its closing becomes the block's closing.
func Extend(existing, next *models.InstrumentBlock) error {
	if next.Opening.Kind != existing.Closing.Kind {
		return &errs.ValidationError{At: next.Line, Subject: next.ISIN, Reason: errs.KindKindMismatch}
	}
	if !compare.Equal(existing.Closing, next.Opening) {
		return &errs.ValidationError{At: next.Line, Subject: next.ISIN, Reason: errs.KindContinuityMismatch}
	}
	existing.Transactions = append(existing.Transactions, next.Transactions...)
	existing.Closing = next.Closing
	existing.ClosingLine = next.ClosingLine
	return nil
}

// Continuity verifies that each page opens with the closing balance of the
// page before it. pages must already be ordered by page number.
func Continuity(pages []*models.Page) error {
	for i := 1; i < len(pages); i++ {
		prev, cur := pages[i-1], pages[i]
		subject := strconv.Itoa(cur.Number)
		if cur.Number == prev.Number {
			return &errs.ValidationError{At: cur.Line, Subject: subject, Reason: errs.KindDuplicatePage}
		}
		if cur.Opening.Kind != prev.Closing.Kind {
			return &errs.ValidationError{At: cur.Line, Subject: subject, Reason: errs.KindKindMismatch}
		}
		if !compare.Equal(prev.Closing, cur.Opening) {
			return &errs.ValidationError{At: cur.Line, Subject: subject, Reason: errs.KindContinuityMismatch}
		}
	}
	return nil
}
