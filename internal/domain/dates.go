package domain

import (
	"strings"
	"time"
)

// DueDateLayout is the calendar-date format the document store uses.
const DueDateLayout = "2006-01-02"

// ParseDueDate parses a YYYY-MM-DD date string. ok is false for empty or
// malformed input.
func ParseDueDate(s string) (time.Time, bool) {
	t, err := time.Parse(DueDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Day truncates a timestamp to midnight UTC. All on-time / overdue
// classifications compare at this granularity so time-of-day never matters.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days a − b after truncating both to
// day granularity. Negative when a is before b.
func DaysBetween(a, b time.Time) int {
	return int(Day(a).Sub(Day(b)).Hours() / 24)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool { return Day(a).Equal(Day(b)) }
