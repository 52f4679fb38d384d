// ingest/xlsx_parser.go
package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/yataco/dashboard/backend/utils"
)

// ParseXLSX reads the first sheet holding data, trying preferredSheet first when set.
// Cells are read raw, so date cells arrive as Excel serial numbers.
func ParseXLSX(r io.Reader, preferredSheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var candidates []string
	if preferredSheet != "" {
		candidates = append(candidates, preferredSheet)
	}
	candidates = append(candidates, f.GetSheetList()...)

	for _, name := range candidates {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			utils.Log.Debugf("Ingest: skipping sheet %q: %v", name, err)
			continue
		}
		table, err := newTable(FormatXLSX, rows)
		if err != nil {
			continue
		}
		utils.Log.Debugf("Ingest: using sheet %q (%d data rows)", name, len(table.Rows))
		return table, nil
	}
	return nil, ErrEmptyFile
}
