// Package schedule implements the pure date-range reconciliation engine:
// calendar-date arithmetic, task/date overlap matching, per-date assignment
// partitioning and specialization filtering. Everything here is side-effect
// free and operates on in-memory collections.
package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the canonical wire format for calendar dates.
const DateLayout = "2006-01-02"

// FormatDate renders a zero-padded YYYY-MM-DD string. The month is 0-indexed,
// matching the convention of the calendar front end this API serves.
func FormatDate(year, month0, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day)
}

// ParseDate parses a canonical YYYY-MM-DD string into a UTC calendar date.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, raw)
}

// Day truncates an instant to its calendar date, discarding time of day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same calendar date,
// regardless of their time of day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// EnumerateDays returns every calendar date from start to end inclusive,
// stepping one day at a time. An end before start yields an empty sequence
// rather than an error.
func EnumerateDays(start, end time.Time) []time.Time {
	first := Day(start)
	last := Day(end)
	if last.Before(first) {
		return nil
	}
	days := make([]time.Time, 0, int(last.Sub(first).Hours()/24)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MonthBounds returns the first and last calendar date of t's month. Exports
// fall back to this range when no explicit range is requested.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}
