// services/report_service_test.go
package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yataco/dashboard/backend/ingest"
	"github.com/yataco/dashboard/backend/models"
)

func strs(v ...string) *[]string { return &v }

func TestLoadReportAndFilter(t *testing.T) {
	useDefaults(t)
	InitSessions()

	view, err := LoadReport(context.Background(), "cursos.csv", strings.NewReader(coursesCSV))
	require.NoError(t, err)
	require.NotEmpty(t, view.SessionID)

	assert.Equal(t, []string{"VIRTUAL", "YATACO PRINCIPAL"}, view.Available.Sites)
	assert.Equal(t, view.Available.Sites, view.Selection.Sites)
	assert.True(t, view.Selection.FilterPeriods)
	assert.Len(t, view.Records, 3)
	assert.Equal(t, 23.0, view.Summary.TotalStudents)
	assert.Equal(t, 31.0, view.Summary.TotalCapacity)
	assert.Equal(t, 74.2, view.Summary.Occupancy)
	assert.False(t, view.Empty)

	filtered, err := ApplyFilter(view.SessionID, models.FilterRequest{Sites: strs("VIRTUAL", "NOWHERE")})
	require.NoError(t, err)
	assert.Equal(t, []string{"VIRTUAL"}, filtered.Selection.Sites, "unknown sites are dropped")
	assert.Equal(t, 5.0, filtered.Summary.TotalStudents)
	assert.Equal(t, 50.0, filtered.Summary.Occupancy)
	require.Len(t, filtered.Summary.Sites, 1)

	// periods were not in the request, so they stay as they were
	assert.Equal(t, view.Selection.Periods, filtered.Selection.Periods)

	again, err := GetReport(view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, filtered.Selection, again.Selection)

	empty, err := ApplyFilter(view.SessionID, models.FilterRequest{Sites: strs()})
	require.NoError(t, err)
	assert.True(t, empty.Empty)
	assert.Equal(t, 0.0, empty.Summary.Occupancy)
	assert.Empty(t, empty.Records)

	require.NoError(t, DeleteReport(view.SessionID))
	_, err = GetReport(view.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestApplyFilterUnknownSession(t *testing.T) {
	InitSessions()
	_, err := ApplyFilter("missing", models.FilterRequest{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestLoadReportUnreadableFile(t *testing.T) {
	useDefaults(t)
	InitSessions()

	_, err := LoadReport(context.Background(), "notes.pdf", strings.NewReader("%PDF-1.4"))
	assert.ErrorIs(t, err, ingest.ErrUnsupportedFormat)

	_, err = LoadReport(context.Background(), "empty.csv", strings.NewReader("  \n"))
	assert.ErrorIs(t, err, ingest.ErrEmptyFile)
	assert.Equal(t, 0, Sessions.Len())
}

func TestAnalyzeWorkbook(t *testing.T) {
	useDefaults(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Sede", "Turno", "Curso", "Cupo", "Alumnos", "Inicio"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"SURCO", "Mañana", "Inglés", 25, 20, 46037}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"SURCO", "Noche", "Francés", 25, 10, "sin fecha"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ds, format, err := AnalyzeFile("cursos.xlsx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "xlsx", format)
	require.Len(t, ds.Records, 2)

	assert.Equal(t, "SURCO", ds.Records[0].Site)
	assert.Equal(t, models.ShiftMorning, ds.Records[0].Shift)
	assert.Equal(t, "January 2026", ds.Records[0].PeriodMonth)
	assert.Equal(t, models.ShiftEvening, ds.Records[1].Shift)
	assert.Equal(t, models.Unspecified, ds.Records[1].PeriodMonth)

	view := ComputeView("", ds, DefaultSelection(ds, "en"))
	assert.Equal(t, 30.0, view.Summary.TotalStudents)
	assert.Equal(t, 50.0, view.Summary.TotalCapacity)
	assert.Equal(t, 60.0, view.Summary.Occupancy)
}

func TestAnalyzeSemicolonExport(t *testing.T) {
	useDefaults(t)
	data := bytes.Join([][]byte{
		[]byte("Período;Sede - turno;Cupo;Estudiantes"),
		[]byte("VIRTUAL - I_25;VIRTUAL - Noche;30;12"),
	}, []byte("\r\n"))

	ds, _, err := AnalyzeFile("export.csv", data)
	require.NoError(t, err)
	require.Len(t, ds.Records, 1)
	assert.Equal(t, "VIRTUAL", ds.Records[0].Site)
	assert.Equal(t, models.ShiftEvening, ds.Records[0].Shift)
	assert.Equal(t, models.Unspecified, ds.Records[0].PeriodMonth, "no start date column")
}
