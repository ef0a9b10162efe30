// Package calendar groups tasks by due date for the calendar and
// day-drilldown views. The index is rebuilt in full on every call.
package calendar

import (
	"time"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

// Marker classifies how a task renders on the calendar.
type Marker string

const (
	MarkerDone    Marker = "done"
	MarkerActive  Marker = "active"
	MarkerOverdue Marker = "overdue"
	MarkerPending Marker = "pending"
)

// Entry is one indexed task with its render marker.
type Entry struct {
	Task   domain.Task `json:"task"`
	Marker Marker      `json:"marker"`
}

// BuildIndex maps each parsable due date (YYYY-MM-DD) to the tasks due that
// day. Tasks without a parsable due date are skipped, not errors. Markers
// are evaluated against now at day granularity.
func BuildIndex(tasks []domain.Task, now time.Time) map[string][]Entry {
	index := make(map[string][]Entry)
	for _, t := range tasks {
		due, ok := t.DueDay()
		if !ok {
			continue
		}
		key := due.Format(domain.DueDateLayout)
		index[key] = append(index[key], Entry{Task: t, Marker: markerFor(t, due, now)})
	}
	return index
}

func markerFor(t domain.Task, due, now time.Time) Marker {
	switch t.ProgressStatus {
	case domain.ProgressCompleted:
		return MarkerDone
	case domain.ProgressInProgress:
		return MarkerActive
	}
	if due.Before(domain.Day(now)) {
		return MarkerOverdue
	}
	return MarkerPending
}

// Upcoming returns the non-completed tasks whose due date falls inside the
// alert window: strictly after yesterday and strictly before four days from
// now, at day granularity. Unparsable due dates are skipped.
func Upcoming(tasks []domain.Task, now time.Time) []domain.Task {
	today := domain.Day(now)
	lower := today.AddDate(0, 0, -1)
	upper := today.AddDate(0, 0, 4)

	var out []domain.Task
	for _, t := range tasks {
		if t.ProgressStatus.IsCompleted() {
			continue
		}
		due, ok := t.DueDay()
		if !ok {
			continue
		}
		if due.After(lower) && due.Before(upper) {
			out = append(out, t)
		}
	}
	return out
}
