// models/record.go
package models

import "time"

// Unspecified is the sentinel for any derived field whose source is missing or unusable.
const Unspecified = "Unspecified"

// Shift is the time-of-day bucket a course session runs in.
type Shift string

const (
	ShiftMorning     Shift = "Morning"
	ShiftAfternoon   Shift = "Afternoon"
	ShiftEvening     Shift = "Evening"
	ShiftUnspecified Shift = Unspecified
)

// LogicalField names a column the pipeline understands, independent of the
// raw header text a given upload uses for it.
type LogicalField string

const (
	FieldSite      LogicalField = "site"
	FieldPeriod    LogicalField = "period"
	FieldShift     LogicalField = "shift"
	FieldCapacity  LogicalField = "capacity"
	FieldStudents  LogicalField = "students"
	FieldStartDate LogicalField = "start_date"
	FieldSubject   LogicalField = "subject"
)

// LogicalFields is the fixed resolution order.
var LogicalFields = []LogicalField{
	FieldSite, FieldPeriod, FieldShift, FieldCapacity, FieldStudents, FieldStartDate, FieldSubject,
}

// ColumnMapping maps a logical field to the raw column that carries it.
// A field missing from the map is absent from the upload.
type ColumnMapping map[LogicalField]string

// Column returns the raw column name for f and whether it was resolved.
func (m ColumnMapping) Column(f LogicalField) (string, bool) {
	col, ok := m[f]
	return col, ok && col != ""
}

// Record is one row of the uploaded table plus its derived fields.
type Record struct {
	Row         int               `json:"row"` // 1-based position among data rows
	Fields      map[string]string `json:"fields"`
	Site        string            `json:"site"`
	Shift       Shift             `json:"shift"`
	PeriodMonth string            `json:"period_month"`
	Subject     string            `json:"subject,omitempty"`
	Capacity    *float64          `json:"capacity,omitempty"`
	Students    *float64          `json:"students,omitempty"`
}

// Dataset is everything derived from one upload. It is replaced, never merged.
type Dataset struct {
	SourceName string        `json:"source_name"`
	Columns    []string      `json:"columns"`
	Mapping    ColumnMapping `json:"mapping"`
	Records    []Record      `json:"-"`
	LoadedAt   time.Time     `json:"loaded_at"`
}
