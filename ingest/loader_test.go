// ingest/loader_test.go
package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name   string
		head   string
		format string
	}{
		{"cursos.csv", "Sede,Cupo", FormatCSV},
		{"CURSOS.CSV", "Sede,Cupo", FormatCSV},
		{"cursos.tsv", "Sede\tCupo", FormatCSV},
		{"cursos.xlsx", "PK\x03\x04", FormatXLSX},
		{"reporte.htm", "<table>", FormatHTML},
		{"reporte.xls", "  <html><table>", FormatHTML},
		{"reporte.xls", "PK\x03\x04rest", FormatXLSX},
		{"upload", "<table>", FormatHTML},
		{"upload", "Sede;Cupo", FormatCSV},
	}
	for _, tc := range cases {
		got, err := DetectFormat(tc.name, []byte(tc.head))
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.format, got, "%s %q", tc.name, tc.head)
	}

	for _, bad := range []struct{ name, head string }{
		{"notas.pdf", "%PDF"},
		{"legacy.xls", "\xd0\xcf\x11\xe0"},
		{"legacy.xls", "Sede,Cupo"},
	} {
		_, err := DetectFormat(bad.name, []byte(bad.head))
		assert.ErrorIs(t, err, ErrUnsupportedFormat, bad.name)
	}
}

func TestLoad(t *testing.T) {
	table, err := Load("reporte.xls", strings.NewReader("<table><tr><td>Sede</td></tr><tr><td>SURCO</td></tr></table>"), "")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, table.Format)
	assert.Equal(t, [][]string{{"SURCO"}}, table.Rows)

	_, err = Load("vacio.csv", strings.NewReader(" \r\n "), "")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Load("roto.xlsx", strings.NewReader("not a zip"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roto.xlsx as xlsx")
}
