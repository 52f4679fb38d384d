// ingest/loader.go
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatHTML = "html"
)

var (
	// ErrUnsupportedFormat is returned for extensions and contents no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyFile is returned when no header row can be found.
	ErrEmptyFile = errors.New("file has no header row")
)

// DetectFormat picks a reader from the file name, looking at the first bytes
// when the extension is missing or ambiguous (.xls).
func DetectFormat(name string, head []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", ".tsv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".xls":
		if format := sniffContent(head); format != "" && format != FormatCSV {
			return format, nil
		}
		return "", fmt.Errorf("%w: legacy binary .xls, save it as .xlsx or .csv", ErrUnsupportedFormat)
	case "":
		if format := sniffContent(head); format != "" {
			return format, nil
		}
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

func sniffContent(head []byte) string {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(head, utf8BOM))
	switch {
	case bytes.HasPrefix(trimmed, []byte("PK\x03\x04")):
		return FormatXLSX
	case bytes.HasPrefix(trimmed, []byte("<")):
		return FormatHTML
	case bytes.HasPrefix(trimmed, []byte("\xd0\xcf\x11\xe0")):
		return "" // OLE2 container, legacy .xls
	default:
		return FormatCSV
	}
}

// Load reads one uploaded file into a Table. Any error means the file as a
// whole is unreadable; row-level problems are left to the extractor.
func Load(name string, r io.Reader, sheet string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("failed to read %s: %w", name, ErrEmptyFile)
	}

	format, err := DetectFormat(name, data)
	if err != nil {
		return nil, err
	}

	var table *Table
	switch format {
	case FormatXLSX:
		table, err = ParseXLSX(bytes.NewReader(data), sheet)
	case FormatHTML:
		table, err = ParseHTMLTable(bytes.NewReader(data))
	default:
		table, err = ParseCSV(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s as %s: %w", name, format, err)
	}
	return table, nil
}
