// services/extractor.go
package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/yataco/dashboard/backend/ingest"
	"github.com/yataco/dashboard/backend/models"
	"github.com/yataco/dashboard/backend/utils"
)

// segmentSeparator splits combined "<SITE> - <REST>" cells.
const segmentSeparator = " - "

// Shift keywords are matched against accent-folded, lower-cased text, in this order.
var shiftKeywords = []struct {
	shift    models.Shift
	keywords []string
}{
	{models.ShiftMorning, []string{"morning", "manana"}},
	{models.ShiftAfternoon, []string{"afternoon", "tarde"}},
	{models.ShiftEvening, []string{"evening", "night", "noche"}},
}

// Day-first layouts come before month-first ones: uploads come from Latin American offices.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"2/1/2006 15:04",
	"02-01-2006",
	"2-1-2006",
	"2006/01/02",
	"02/01/06",
	"2/1/06",
}

// Excel serial numbers accepted as dates: 1954-10-03 .. 2119-01-08.
const (
	minExcelSerial = 20000
	maxExcelSerial = 80000
)

// DeriveSite returns the explicit site when there is one, otherwise the part of
// the period cell before the first " - " (the whole cell if there is no separator).
func DeriveSite(explicitSite, period string) string {
	if site := strings.TrimSpace(explicitSite); site != "" {
		return site
	}
	head, _, _ := strings.Cut(period, segmentSeparator)
	if site := strings.TrimSpace(head); site != "" {
		return site
	}
	return models.Unspecified
}

// ClassifyShift buckets a free-text shift cell such as "YATACO PRINCIPAL - Noche".
func ClassifyShift(value string) models.Shift {
	folded := utils.FoldText(value)
	if folded == "" {
		return models.ShiftUnspecified
	}
	for _, rule := range shiftKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(folded, kw) {
				return rule.shift
			}
		}
	}
	return models.ShiftUnspecified
}

// ParseStartDate understands the layouts above and Excel serial numbers.
func ParseStartDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	// xlsx cells are read raw, so dates show up as serials like "46037".
	if serial, err := cast.ToFloat64E(value); err == nil && serial >= minExcelSerial && serial <= maxExcelSerial {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DerivePeriodMonth formats a start date cell as "<Month name> <Year>".
func DerivePeriodMonth(value, locale string) string {
	t, ok := ParseStartDate(value)
	if !ok {
		return models.Unspecified
	}
	return utils.MonthYearLabel(locale, t)
}

// ParseNumber reads counts and capacities. Spaces are ignored and a lone decimal
// comma is accepted. Negative values, NaN and anything else unparseable are
// treated as missing.
func ParseNumber(value string) *float64 {
	value = strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if value == "" {
		return nil
	}
	v, err := cast.ToFloat64E(value)
	// "12,5" from Spanish-locale exports
	if err != nil && strings.Count(value, ",") == 1 && !strings.Contains(value, ".") {
		v, err = cast.ToFloat64E(strings.Replace(value, ",", ".", 1))
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

// BuildDataset derives Site, Shift and PeriodMonth for every row of table.
// Derivation never fails per row; only a structurally broken table errors.
func BuildDataset(name string, table *ingest.Table, mapping models.ColumnMapping, locale string) (*models.Dataset, error) {
	rows, err := ingest.Decode(table, mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	_, hasShift := mapping.Column(models.FieldShift)
	_, hasStart := mapping.Column(models.FieldStartDate)

	ds := &models.Dataset{
		SourceName: name,
		Columns:    table.Header,
		Mapping:    mapping,
		Records:    make([]models.Record, 0, len(rows)),
		LoadedAt:   time.Now(),
	}

	unparsedDates, unparsedNumbers := 0, 0
	for i, raw := range rows {
		fields := make(map[string]string, len(table.Header))
		for j, col := range table.Header {
			fields[col] = table.Rows[i][j]
		}

		rec := models.Record{
			Row:         i + 1,
			Fields:      fields,
			Site:        DeriveSite(raw.Site, raw.Period),
			Shift:       models.ShiftUnspecified,
			PeriodMonth: models.Unspecified,
			Subject:     strings.TrimSpace(raw.Subject),
			Capacity:    ParseNumber(raw.Capacity),
			Students:    ParseNumber(raw.Students),
		}
		if hasShift {
			rec.Shift = ClassifyShift(raw.Shift)
		}
		if hasStart {
			rec.PeriodMonth = DerivePeriodMonth(raw.StartDate, locale)
			if rec.PeriodMonth == models.Unspecified && strings.TrimSpace(raw.StartDate) != "" {
				unparsedDates++
			}
		}
		// A non-blank cell that came back nil was garbage or negative.
		if (rec.Capacity == nil && strings.TrimSpace(raw.Capacity) != "") ||
			(rec.Students == nil && strings.TrimSpace(raw.Students) != "") {
			unparsedNumbers++
		}
		ds.Records = append(ds.Records, rec)
	}

	if unparsedDates > 0 || unparsedNumbers > 0 {
		utils.Log.Warnf("Extractor: %s had %d unparseable dates and %d rows with unparseable or negative numbers; treated as missing",
			name, unparsedDates, unparsedNumbers)
	}
	utils.Log.Infof("Extractor: built dataset %s with %d records", name, len(ds.Records))
	return ds, nil
}
