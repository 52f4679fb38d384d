// services/aggregator.go
package services

import (
	"math"
	"sort"

	"github.com/yataco/dashboard/backend/models"
)

// AggregateOptions carries the policy knobs of Aggregate.
type AggregateOptions struct {
	// MissingCapacity is counted for each record with no usable capacity.
	MissingCapacity float64
	// DetailLimit caps the course lines listed per site.
	DetailLimit int
	// Locale orders the period breakdown.
	Locale string
}

var shiftOrder = []models.Shift{
	models.ShiftMorning, models.ShiftAfternoon, models.ShiftEvening, models.ShiftUnspecified,
}

// Occupancy is students/capacity as a percentage rounded to one decimal.
// Zero (or negative) capacity yields 0 instead of a division error, and the
// result is never negative.
func Occupancy(students, capacity float64) float64 {
	if capacity <= 0 || students <= 0 {
		return 0
	}
	return math.Round(students/capacity*1000) / 10
}

type totals struct {
	students float64
	capacity float64
	count    int
}

func (t *totals) add(rec models.Record, missingCapacity float64) {
	if rec.Students != nil {
		t.students += *rec.Students
	}
	if rec.Capacity != nil {
		t.capacity += *rec.Capacity
	} else {
		t.capacity += missingCapacity
	}
	t.count++
}

// Aggregate summarizes already-filtered records. Per-site entries are produced
// for every selected site that has at least one record; a nil selectedSites
// means every site present.
func Aggregate(records []models.Record, selectedSites []string, opts AggregateOptions) models.AggregateSummary {
	var overall totals
	bySite := map[string]*totals{}
	siteCourses := map[string][]models.CourseLine{}
	byShift := map[models.Shift]*totals{}
	byPeriod := map[string]*totals{}

	for _, rec := range records {
		overall.add(rec, opts.MissingCapacity)

		if bySite[rec.Site] == nil {
			bySite[rec.Site] = &totals{}
		}
		bySite[rec.Site].add(rec, opts.MissingCapacity)
		// Only the first DetailLimit records per site make it into the course list.
		if len(siteCourses[rec.Site]) < opts.DetailLimit {
			line := models.CourseLine{Subject: rec.Subject, Shift: rec.Shift}
			if rec.Students != nil {
				line.Students = *rec.Students
			}
			siteCourses[rec.Site] = append(siteCourses[rec.Site], line)
		}

		if byShift[rec.Shift] == nil {
			byShift[rec.Shift] = &totals{}
		}
		byShift[rec.Shift].add(rec, opts.MissingCapacity)

		if byPeriod[rec.PeriodMonth] == nil {
			byPeriod[rec.PeriodMonth] = &totals{}
		}
		byPeriod[rec.PeriodMonth].add(rec, opts.MissingCapacity)
	}

	summary := models.AggregateSummary{
		TotalStudents: overall.students,
		TotalCapacity: overall.capacity,
		Occupancy:     Occupancy(overall.students, overall.capacity),
		CourseCount:   overall.count,
		ActiveSites:   []string{},
		Sites:         []models.SiteSummary{},
		Shifts:        []models.ShiftSummary{},
		Periods:       []models.PeriodSummary{},
	}

	// nil means "no site filter"; an empty, non-nil slice means nothing was selected.
	selected := selectedSites
	if selected == nil {
		for site := range bySite {
			selected = append(selected, site)
		}
	}
	sites := intersect(selected, keys(bySite))
	sort.Strings(sites)

	for _, site := range sites {
		t := bySite[site]
		summary.ActiveSites = append(summary.ActiveSites, site)
		courses := siteCourses[site]
		if courses == nil {
			courses = []models.CourseLine{}
		}
		summary.Sites = append(summary.Sites, models.SiteSummary{
			Site:          site,
			TotalStudents: t.students,
			TotalCapacity: t.capacity,
			Occupancy:     Occupancy(t.students, t.capacity),
			CourseCount:   t.count,
			GroupCount:    t.count,
			Courses:       courses,
		})
	}

	for _, shift := range shiftOrder {
		if t, ok := byShift[shift]; ok {
			summary.Shifts = append(summary.Shifts, models.ShiftSummary{
				Shift:         shift,
				TotalStudents: t.students,
				CourseCount:   t.count,
			})
		}
	}

	periods := keys(byPeriod)
	SortPeriods(periods, opts.Locale)
	for _, period := range periods {
		t := byPeriod[period]
		summary.Periods = append(summary.Periods, models.PeriodSummary{
			Period:        period,
			TotalStudents: t.students,
			TotalCapacity: t.capacity,
			CourseCount:   t.count,
		})
	}
	return summary
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
