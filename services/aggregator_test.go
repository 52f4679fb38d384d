// services/aggregator_test.go
package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yataco/dashboard/backend/models"
)

var defaultAggregate = AggregateOptions{MissingCapacity: 1, DetailLimit: 10, Locale: "en"}

func TestAggregateMissingCapacityCountsAsOne(t *testing.T) {
	records := []models.Record{
		{Row: 1, Site: "A", Shift: models.ShiftMorning, PeriodMonth: "January 2026", Capacity: float(10), Students: float(5)},
		{Row: 2, Site: "A", Shift: models.ShiftEvening, PeriodMonth: "January 2026", Capacity: float(20), Students: float(15)},
		{Row: 3, Site: "B", Shift: models.ShiftEvening, PeriodMonth: models.Unspecified, Students: float(3)},
	}

	s := Aggregate(records, []string{"A", "B"}, defaultAggregate)

	assert.Equal(t, 31.0, s.TotalCapacity)
	assert.Equal(t, 23.0, s.TotalStudents)
	assert.Equal(t, 74.2, s.Occupancy)
	assert.Equal(t, 3, s.CourseCount)
	assert.Equal(t, []string{"A", "B"}, s.ActiveSites)

	require.Len(t, s.Sites, 2)
	assert.Equal(t, models.SiteSummary{
		Site: "A", TotalStudents: 20, TotalCapacity: 30, Occupancy: 66.7, CourseCount: 2, GroupCount: 2,
		Courses: []models.CourseLine{
			{Shift: models.ShiftMorning, Students: 5},
			{Shift: models.ShiftEvening, Students: 15},
		},
	}, s.Sites[0])
	assert.Equal(t, 300.0, s.Sites[1].Occupancy)

	require.Len(t, s.Shifts, 2)
	assert.Equal(t, models.ShiftMorning, s.Shifts[0].Shift)
	assert.Equal(t, 18.0, s.Shifts[1].TotalStudents)

	require.Len(t, s.Periods, 2)
	assert.Equal(t, "January 2026", s.Periods[0].Period)
	assert.Equal(t, models.Unspecified, s.Periods[1].Period)
}

func TestAggregateEmptySelection(t *testing.T) {
	s := Aggregate(nil, []string{}, defaultAggregate)

	assert.Zero(t, s.TotalStudents)
	assert.Zero(t, s.TotalCapacity)
	assert.Equal(t, 0.0, s.Occupancy)
	assert.False(t, math.IsNaN(s.Occupancy))
	assert.Zero(t, s.CourseCount)
	assert.Empty(t, s.Sites)
	assert.NotNil(t, s.Sites)
}

func TestAggregateZeroCapacityPolicy(t *testing.T) {
	records := []models.Record{{Site: "A", Students: float(4)}}
	s := Aggregate(records, nil, AggregateOptions{MissingCapacity: 0, DetailLimit: 10})
	assert.Equal(t, 0.0, s.TotalCapacity)
	assert.Equal(t, 0.0, s.Occupancy)
}

func TestAggregateMissingStudentsCountAsZero(t *testing.T) {
	records := []models.Record{{Site: "A", Capacity: float(10)}}
	s := Aggregate(records, nil, defaultAggregate)
	assert.Equal(t, 0.0, s.TotalStudents)
	assert.Equal(t, 0.0, s.Occupancy)
	assert.Equal(t, []string{"A"}, s.ActiveSites)
}

func TestAggregateDetailLimit(t *testing.T) {
	var records []models.Record
	for i := 0; i < 15; i++ {
		records = append(records, models.Record{Row: i + 1, Site: "A", Subject: fmt.Sprintf("Curso %d", i), Students: float(1)})
	}
	s := Aggregate(records, []string{"A"}, defaultAggregate)
	require.Len(t, s.Sites, 1)
	assert.Len(t, s.Sites[0].Courses, 10)
	assert.Equal(t, "Curso 0", s.Sites[0].Courses[0].Subject)
	assert.Equal(t, 15, s.Sites[0].GroupCount)
}

func TestAggregateSiteTotalsAddUp(t *testing.T) {
	useDefaults(t)
	ds := loadCourses(t)

	partitions := [][]string{
		{"VIRTUAL"},
		{"YATACO PRINCIPAL"},
		{"VIRTUAL", "YATACO PRINCIPAL"},
		{},
	}
	for _, sites := range partitions {
		sel := DefaultSelection(ds, "en")
		sel.Sites = sites
		s := Aggregate(FilterRecords(ds, sel), sites, defaultAggregate)

		var sum float64
		for _, site := range s.Sites {
			sum += site.TotalStudents
		}
		assert.Equal(t, s.TotalStudents, sum, "sites %v", sites)
		assert.GreaterOrEqual(t, s.Occupancy, 0.0)
	}
}

func TestOccupancy(t *testing.T) {
	assert.Equal(t, 74.2, Occupancy(23, 31))
	assert.Equal(t, 50.0, Occupancy(5, 10))
	assert.Equal(t, 0.0, Occupancy(5, 0))
	assert.Equal(t, 0.0, Occupancy(5, -1))
	assert.Equal(t, 0.0, Occupancy(-5, 10))
}

func TestAggregateOccupancyNeverNegative(t *testing.T) {
	records := []models.Record{
		{Site: "A", Capacity: float(10), Students: float(-5)},
		{Site: "B", Capacity: float(-10), Students: float(5)},
		{Site: "C", Students: float(-1)},
	}
	s := Aggregate(records, nil, defaultAggregate)
	assert.GreaterOrEqual(t, s.Occupancy, 0.0)
	for _, site := range s.Sites {
		assert.GreaterOrEqual(t, site.Occupancy, 0.0, site.Site)
	}
}
