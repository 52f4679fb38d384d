// services/filter.go
package services

import (
	"sort"

	"github.com/yataco/dashboard/backend/models"
	"github.com/yataco/dashboard/backend/utils"
)

// FilterRecords keeps, in input order, the records whose site is selected and,
// when period filtering is on, whose period is selected too.
func FilterRecords(ds *models.Dataset, sel models.FilterSelection) []models.Record {
	if ds == nil {
		return []models.Record{}
	}
	sites := toSet(sel.Sites)
	periods := toSet(sel.Periods)

	kept := make([]models.Record, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if !sites[rec.Site] {
			continue
		}
		// With period filtering off every period passes, even an empty selection.
		if sel.FilterPeriods && !periods[rec.PeriodMonth] {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// DefaultSelection selects every site and period present, with period filtering on.
func DefaultSelection(ds *models.Dataset, locale string) models.FilterSelection {
	return models.FilterSelection{
		Sites:         DistinctSites(ds),
		Periods:       DistinctPeriods(ds, locale),
		FilterPeriods: true,
	}
}

// DistinctSites returns the sorted distinct Site values.
func DistinctSites(ds *models.Dataset) []string {
	if ds == nil {
		return []string{}
	}
	seen := map[string]bool{}
	sites := []string{}
	for _, rec := range ds.Records {
		if !seen[rec.Site] {
			seen[rec.Site] = true
			sites = append(sites, rec.Site)
		}
	}
	sort.Strings(sites)
	return sites
}

// DistinctPeriods returns the distinct PeriodMonth values in calendar order,
// with Unspecified last.
func DistinctPeriods(ds *models.Dataset, locale string) []string {
	if ds == nil {
		return []string{}
	}
	seen := map[string]bool{}
	periods := []string{}
	for _, rec := range ds.Records {
		if !seen[rec.PeriodMonth] {
			seen[rec.PeriodMonth] = true
			periods = append(periods, rec.PeriodMonth)
		}
	}
	SortPeriods(periods, locale)
	return periods
}

// SortPeriods orders month labels chronologically; labels that are not dates
// (Unspecified included) go last, alphabetically.
func SortPeriods(periods []string, locale string) {
	sort.SliceStable(periods, func(i, j int) bool {
		ti, okI := utils.ParseMonthYearLabel(locale, periods[i])
		tj, okJ := utils.ParseMonthYearLabel(locale, periods[j])
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI != okJ:
			return okI // real months before "Unspecified" and other text
		default:
			return periods[i] < periods[j]
		}
	})
}

// RestrictSelection drops values that are not present in the dataset, so a
// selection is always a subset of what can be chosen.
func RestrictSelection(sel models.FilterSelection, available models.AvailableFilters) models.FilterSelection {
	return models.FilterSelection{
		Sites:         intersect(sel.Sites, available.Sites),
		Periods:       intersect(sel.Periods, available.Periods),
		FilterPeriods: sel.FilterPeriods,
	}
}

func intersect(values, allowed []string) []string {
	ok := toSet(allowed)
	seen := map[string]bool{}
	out := []string{}
	for _, v := range values {
		if ok[v] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
