// models/api_models.go
package models

// FilterSelection is the user's current choice of sites and periods.
type FilterSelection struct {
	Sites         []string `json:"sites"`
	Periods       []string `json:"periods"`
	FilterPeriods bool     `json:"filter_periods"`
}

// FilterRequest is the JSON body for POST /api/reports/{id}/filter.
// A nil list keeps the current selection; an empty list selects nothing.
type FilterRequest struct {
	Sites         *[]string `json:"sites"`
	Periods       *[]string `json:"periods"`
	FilterPeriods *bool     `json:"filter_periods"`
}

// FetchReportRequest is the JSON body for POST /api/reports/fetch.
type FetchReportRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// AvailableFilters lists every distinct value the current Dataset offers.
type AvailableFilters struct {
	Sites   []string `json:"sites"`
	Periods []string `json:"periods"`
}

// ReportView is everything the presentation layer needs for one render.
type ReportView struct {
	SessionID string           `json:"session_id"`
	Source    string           `json:"source"`
	Columns   []string         `json:"columns"`
	Mapping   ColumnMapping    `json:"mapping"`
	Available AvailableFilters `json:"available"`
	Selection FilterSelection  `json:"selection"`
	Summary   AggregateSummary `json:"summary"`
	Records   []Record         `json:"records"`
	Empty     bool             `json:"empty"` // no data for the current filters
}
