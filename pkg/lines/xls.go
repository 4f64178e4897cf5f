package lines

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
)

// maxRows is the row limit of the legacy XLS format.
const maxRows = 65536

// FromXLS reads a statement exported to a legacy Excel workbook, one
// statement line per row in the first column of the first sheet. Row numbers
// become line numbers.
func FromXLS(data []byte) (*Buffer, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(maxRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	texts := make([]string, len(rows))
	for i, row := range rows {
		if len(row) > 0 {
			texts[i] = row[0]
		}
	}
	return New(texts), nil
}
