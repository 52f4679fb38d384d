// services/testdata_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/models"
)

// coursesCSV mirrors the academic export format: site inside the period, shift
// inside "Sede - turno", padded header names.
const coursesCSV = ` Período ,Sede - turno,Curso,Cupo máximo, Estudiantes ,Fecha de inicio
VIRTUAL - I_25,VIRTUAL - Noche,Python,10,5,2026-01-15
YATACO PRINCIPAL - I_25,YATACO PRINCIPAL - Mañana,Excel,20,15,03/02/2026
YATACO PRINCIPAL - I_25,YATACO PRINCIPAL - Tarde,Word,,3,not a date
`

func float(v float64) *float64 { return &v }

func loadCourses(t *testing.T) *models.Dataset {
	t.Helper()
	ds, format, err := AnalyzeFile("cursos.csv", []byte(coursesCSV))
	require.NoError(t, err)
	require.Equal(t, "csv", format)
	return ds
}

// useDefaults restores the default configuration after a test tweaks it.
func useDefaults(t *testing.T) {
	t.Helper()
	saved := config.AppConfig
	config.AppConfig = config.Defaults()
	t.Cleanup(func() { config.AppConfig = saved })
}
