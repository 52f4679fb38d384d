// models/summary.go
package models

// CourseLine is the short per-course view shown under each site.
type CourseLine struct {
	Subject  string  `json:"subject"`
	Shift    Shift   `json:"shift"`
	Students float64 `json:"students"`
}

// SiteSummary holds the same totals as AggregateSummary, restricted to one site.
type SiteSummary struct {
	Site          string       `json:"site"`
	TotalStudents float64      `json:"total_students"`
	TotalCapacity float64      `json:"total_capacity"`
	Occupancy     float64      `json:"occupancy"`
	CourseCount   int          `json:"course_count"`
	GroupCount    int          `json:"group_count"`
	Courses       []CourseLine `json:"courses"`
}

// ShiftSummary is one slice of the students-by-shift chart.
type ShiftSummary struct {
	Shift         Shift   `json:"shift"`
	TotalStudents float64 `json:"total_students"`
	CourseCount   int     `json:"course_count"`
}

// PeriodSummary is one bar of the students-by-period chart.
type PeriodSummary struct {
	Period        string  `json:"period"`
	TotalStudents float64 `json:"total_students"`
	TotalCapacity float64 `json:"total_capacity"`
	CourseCount   int     `json:"course_count"`
}

// AggregateSummary is recomputed on every filter change and never stored.
type AggregateSummary struct {
	TotalStudents float64         `json:"total_students"`
	TotalCapacity float64         `json:"total_capacity"`
	Occupancy     float64         `json:"occupancy"` // percent, one decimal
	CourseCount   int             `json:"course_count"`
	ActiveSites   []string        `json:"active_sites"`
	Sites         []SiteSummary   `json:"sites"`
	Shifts        []ShiftSummary  `json:"shifts"`
	Periods       []PeriodSummary `json:"periods"`
}
