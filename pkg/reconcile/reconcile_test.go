package reconcile

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/secstmt/pkg/errs"
	"github.com/yurifrl/secstmt/pkg/models"
)

func unit(v int64) models.Quantity {
	return models.NewQuantity(models.KindUnit, decimal.NewFromInt(v))
}

func famt(v string) models.Quantity {
	return models.NewQuantity(models.KindFaceAmount, decimal.RequireFromString(v))
}

func TestBlockBalanced(t *testing.T) {
	b := &models.InstrumentBlock{
		ISIN:    "US0378331005",
		Opening: unit(100),
		Transactions: []models.Transaction{
			{Quantity: unit(100)},
			{Quantity: unit(-30)},
		},
		Closing: unit(170),
	}
	require.NoError(t, Block(b))

	b.Closing = unit(171)
	b.ClosingLine = 14
	var validation *errs.ValidationError
	require.True(t, errors.As(Block(b), &validation))
	assert.Equal(t, "US0378331005", validation.Subject)
	assert.Equal(t, 14, validation.At)
}

func TestPageUsesMarks(t *testing.T) {
	p := &models.Page{
		Number:  2,
		Opening: famt("10.00"),
		Transactions: []models.Transaction{
			{Quantity: famt("2.50"), Mark: models.MarkCredit},
			{Quantity: famt("1.25"), Mark: models.MarkDebit},
		},
		Closing: famt("11.25"),
	}
	require.NoError(t, Page(p))

	p.Closing = famt("13.75")
	var validation *errs.ValidationError
	require.True(t, errors.As(Page(p), &validation))
	assert.Equal(t, "2", validation.Subject)
}

func TestExtend(t *testing.T) {
	existing := &models.InstrumentBlock{ISIN: "X", Opening: unit(1), Closing: unit(3),
		Transactions: []models.Transaction{{Quantity: unit(2)}}}
	next := &models.InstrumentBlock{ISIN: "X", Opening: unit(3), Closing: unit(2), ClosingLine: 40,
		Transactions: []models.Transaction{{Quantity: unit(-1)}}}

	require.NoError(t, Extend(existing, next))
	assert.Len(t, existing.Transactions, 2)
	assert.Equal(t, unit(2), existing.Closing)
	assert.Equal(t, 40, existing.ClosingLine)
	require.NoError(t, Block(existing))

	gap := &models.InstrumentBlock{ISIN: "X", Opening: unit(9), Closing: unit(9), Line: 50}
	var validation *errs.ValidationError
	require.True(t, errors.As(Extend(existing, gap), &validation))
	assert.Equal(t, errs.KindContinuityMismatch, validation.Reason)
	assert.Equal(t, 50, validation.At)
}

func TestContinuity(t *testing.T) {
	pages := []*models.Page{
		{Number: 1, Opening: famt("0"), Closing: famt("5.00")},
		{Number: 2, Opening: famt("5.001"), Closing: famt("7.00")},
		{Number: 3, Opening: famt("7.00"), Closing: famt("7.00")},
	}
	require.NoError(t, Continuity(pages))

	pages[2].Opening = famt("6.99")
	pages[2].Line = 33
	var validation *errs.ValidationError
	require.True(t, errors.As(Continuity(pages), &validation))
	assert.Equal(t, "3", validation.Subject)
	assert.Equal(t, 33, validation.At)

	require.NoError(t, Continuity(pages[:1]))
	require.NoError(t, Continuity(nil))
}

func TestReport(t *testing.T) {
	envs := []*models.Envelope{
		{Reference: "REF1", Blocks: []*models.InstrumentBlock{
			{ISIN: "A", Opening: unit(1), Closing: unit(2), Transactions: []models.Transaction{{Quantity: unit(1)}}},
		}},
		{Reference: "STMT", Pages: []*models.Page{
			{Number: 1, Opening: famt("1.00"), Closing: famt("3.00"),
				Transactions: []models.Transaction{{Quantity: famt("1.00"), Mark: models.MarkDebit}}},
		}},
	}
	report := Build(envs)
	require.Len(t, report.Items, 2)
	assert.Equal(t, Balanced, report.Items[0].Status)
	assert.Equal(t, "1", report.Items[1].Subject)
	assert.Equal(t, Unbalanced, report.Items[1].Status)
	assert.Equal(t, "-1", report.Items[1].Movement.String())
	assert.Equal(t, 1, report.BalancedCount())
}
