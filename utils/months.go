// utils/months.go
package utils

import (
	"fmt"
	"time"
)

var monthNames = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"es": {"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"},
}

// MonthName returns the month name for locale, falling back to English.
func MonthName(locale string, m time.Month) string {
	names, ok := monthNames[locale]
	if !ok {
		names = monthNames["en"]
	}
	return names[m-1]
}

// MonthYearLabel formats t as "<Month name> <Year>", e.g. "January 2026".
func MonthYearLabel(locale string, t time.Time) string {
	return fmt.Sprintf("%s %d", MonthName(locale, t.Month()), t.Year())
}

// ParseMonthYearLabel is the inverse of MonthYearLabel. It is used to sort
// period labels chronologically.
func ParseMonthYearLabel(locale, label string) (time.Time, bool) {
	names, ok := monthNames[locale]
	if !ok {
		names = monthNames["en"]
	}
	for i, name := range names {
		var year int
		if n, err := fmt.Sscanf(label, name+" %d", &year); err == nil && n == 1 {
			return time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
