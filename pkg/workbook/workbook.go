// Package workbook exports parsed statements as an XLSX workbook with a
// Balances sheet and a Movements sheet.
package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/yurifrl/secstmt/pkg/csv"
	"github.com/yurifrl/secstmt/pkg/models"
	"github.com/yurifrl/secstmt/pkg/reconcile"
)

const (
	SheetBalances  = "Balances"
	SheetMovements = "Movements"
)

var balanceHeader = []string{"reference", "subject", "kind", "opening", "movement", "closing", "transactions", "status"}

// Write renders envs to w.
func Write(w io.Writer, envs []*models.Envelope) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with a single "Sheet1".
	if err := f.SetSheetName(f.GetSheetName(0), SheetBalances); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetMovements); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeRow(f, SheetBalances, 1, toAny(balanceHeader)); err != nil {
		return err
	}
	for i, e := range reconcile.Build(envs).Items {
		row := []any{
			e.Reference, e.Subject, string(e.Kind),
			e.Opening.InexactFloat64(), e.Movement.InexactFloat64(), e.Closing.InexactFloat64(),
			e.Count, e.Status.String(),
		}
		if err := writeRow(f, SheetBalances, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, SheetMovements, 1, toAny(csv.MovementHeader)); err != nil {
		return err
	}
	for i, m := range csv.Movements(envs) {
		row := toAny(m.Row())
		// Keep the amount numeric so spreadsheets can sum it.
		row[6] = m.Amount().InexactFloat64()
		row[11] = m.Line
		if err := writeRow(f, SheetMovements, i+2, row); err != nil {
			return err
		}
	}

	for _, sheet := range []string{SheetBalances, SheetMovements} {
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
