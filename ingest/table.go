// ingest/table.go
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/yataco/dashboard/backend/utils"
)

// Table is an upload reduced to a header and rectangular string rows.
// Every row has exactly len(Header) cells.
type Table struct {
	Format string
	Header []string
	Rows   [][]string
}

// newTable takes the first non-blank row as header, drops blank rows and pads
// or truncates the rest to the header width.
func newTable(format string, raw [][]string) (*Table, error) {
	start := -1
	for i, row := range raw {
		if !isBlankRow(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrEmptyFile
	}

	header := uniqueHeader(raw[start])
	t := &Table{Format: format, Header: header}
	for _, row := range raw[start+1:] {
		if isBlankRow(row) {
			continue
		}
		cells := make([]string, len(header))
		copy(cells, row)
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// uniqueHeader trims names, names empty columns "Unnamed: <i>" and suffixes
// repeats with ".1", ".2", ... so every column can be addressed by name.
func uniqueHeader(raw []string) []string {
	header := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	for i, name := range raw {
		name = utils.CleanColumnName(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		// The raw header may already hold "Cupo.1" or "Unnamed: 1", so keep
		// counting until the suffixed name is free.
		base := name
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s.%d", base, n)
		}
		used[name] = true
		header[i] = name
	}
	return header
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// rowReader feeds already-split rows to csvutil.
type rowReader struct {
	rows [][]string
	next int
}

func (r *rowReader) Read() ([]string, error) {
	if r.next >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.next]
	r.next++
	return row, nil
}
