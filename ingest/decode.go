// ingest/decode.go
package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/yataco/dashboard/backend/models"
)

// canonicalPrefix marks resolved columns in the decoder header.
const canonicalPrefix = "@"

// RawRow holds the cells of the resolved logical columns of one row.
// Fields whose column is absent stay empty.
type RawRow struct {
	Site      string `csv:"@site"`
	Period    string `csv:"@period"`
	Shift     string `csv:"@shift"`
	Capacity  string `csv:"@capacity"`
	Students  string `csv:"@students"`
	StartDate string `csv:"@start_date"`
	Subject   string `csv:"@subject"`
}

// CanonicalHeader returns the table header with every resolved column renamed to
// its "@<field>" key, so csvutil can decode rows of any schema variant into RawRow.
func CanonicalHeader(header []string, mapping models.ColumnMapping) []string {
	out := make([]string, len(header))
	for i, name := range header {
		// keep raw "@..." columns from matching a RawRow tag
		if strings.HasPrefix(name, canonicalPrefix) {
			name = canonicalPrefix + name
		}
		out[i] = name
	}
	for _, field := range models.LogicalFields {
		col, ok := mapping.Column(field)
		if !ok {
			continue
		}
		for i, name := range header {
			if name == col {
				out[i] = canonicalPrefix + string(field)
				break
			}
		}
	}
	return out
}

// Decode maps every row of t onto RawRow. The result is index-aligned with t.Rows.
func Decode(t *Table, mapping models.ColumnMapping) ([]RawRow, error) {
	dec, err := csvutil.NewDecoder(&rowReader{rows: t.Rows}, CanonicalHeader(t.Header, mapping)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create row decoder: %w", err)
	}

	rows := make([]RawRow, 0, len(t.Rows))
	for {
		var row RawRow
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
