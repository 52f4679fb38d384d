// cmd/render.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yataco/dashboard/backend/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f77b4"))
	kpiStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

func formatCount(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// renderView prints the KPIs, the per-site table and the per-shift table.
func renderView(view models.ReportView) string {
	var b strings.Builder
	s := view.Summary

	b.WriteString(titleStyle.Render("Enrollment summary: "+view.Source) + "\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %d   %s %.1f%%\n\n",
		mutedStyle.Render("Students"), kpiStyle.Render(formatCount(s.TotalStudents)),
		mutedStyle.Render("Capacity"), kpiStyle.Render(formatCount(s.TotalCapacity)),
		mutedStyle.Render("Courses"), s.CourseCount,
		mutedStyle.Render("Occupancy"), s.Occupancy,
	)

	if view.Empty {
		b.WriteString("No data for the current filters.\n")
		return b.String()
	}

	siteRows := make([][]string, 0, len(s.Sites))
	for _, site := range s.Sites {
		siteRows = append(siteRows, []string{
			site.Site,
			formatCount(site.TotalStudents),
			formatCount(site.TotalCapacity),
			fmt.Sprintf("%.1f%%", site.Occupancy),
			fmt.Sprintf("%d", site.GroupCount),
		})
	}
	b.WriteString(table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Site", "Students", "Capacity", "Occupancy", "Groups").
		Rows(siteRows...).
		String() + "\n")

	shiftRows := make([][]string, 0, len(s.Shifts))
	for _, shift := range s.Shifts {
		shiftRows = append(shiftRows, []string{
			string(shift.Shift),
			formatCount(shift.TotalStudents),
			fmt.Sprintf("%d", shift.CourseCount),
		})
	}
	b.WriteString(table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Shift", "Students", "Courses").
		Rows(shiftRows...).
		String() + "\n")
	return b.String()
}
