package workbook

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yurifrl/secstmt/pkg/models"
)

func TestWrite(t *testing.T) {
	unit := func(n int64) models.Quantity { return models.NewQuantity(models.KindUnit, decimal.NewFromInt(n)) }
	envs := []*models.Envelope{{
		Reference: "REF1",
		Body:      models.BodySecurities,
		Blocks: []*models.InstrumentBlock{{
			ISIN:    "US0378331005",
			Opening: unit(10),
			Transactions: []models.Transaction{
				{TradeDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Quantity: unit(-4), Reference: "T1", Line: 7},
			},
			Closing: unit(6),
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, envs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetBalances, SheetMovements}, f.GetSheetList())

	rows, err := f.GetRows(SheetBalances)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"REF1", "US0378331005", "UNIT", "10", "-4", "6", "1", "balanced"}, rows[1])

	rows, err = f.GetRows(SheetMovements)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-02", rows[1][3])
	assert.Equal(t, "-4", rows[1][6])
	assert.Equal(t, "7", rows[1][11])
}
