// Package score derives bounded performance figures from task date
// arithmetic: an integer score with a High/Medium/Low bucket per task, and a
// composite percentage score per employee. Everything here is a pure
// function of its inputs.
package score

import (
	"fmt"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

// Bucket is the discretized classification of a task score.
type Bucket string

const (
	BucketHigh   Bucket = "High"
	BucketMedium Bucket = "Medium"
	BucketLow    Bucket = "Low"
)

// TaskScore is the derived per-task result. It is recomputed on every view
// and never persisted.
type TaskScore struct {
	Score  int    `json:"score"`
	Bucket Bucket `json:"bucket"`
}

// Task scores one task from its due date, creation timestamp, last progress
// update and reassignment count. ok is false when the task has no progress
// update or no parsable due date; such tasks are excluded from aggregates.
//
// The base bonus is decided by the first matching rule:
//
//	finished 2+ days before due  → +2
//	finished 1 day before due    → +1
//	updated the day it was made  → +1
//
// Each reassignment then subtracts one point. The result is not clamped and
// may go negative.
func Task(t domain.Task) (TaskScore, bool) {
	if t.ProgressUpdatedAt == nil {
		return TaskScore{}, false
	}
	due, ok := t.DueDay()
	if !ok {
		return TaskScore{}, false
	}
	updated := *t.ProgressUpdatedAt

	diffDue := domain.DaysBetween(due, updated)
	diffAssigned := domain.DaysBetween(updated, t.CreatedAt)

	base := 0
	switch {
	case diffDue >= 2:
		base = 2
	case diffDue == 1:
		base = 1
	case diffAssigned == 0:
		base = 1
	}

	s := base - t.Reassignments()
	return TaskScore{Score: s, Bucket: bucketFor(s)}, true
}

func bucketFor(score int) Bucket {
	switch {
	case score >= 3:
		return BucketHigh
	case score == 2:
		return BucketMedium
	default:
		return BucketLow
	}
}

// BucketTally counts scoreable tasks per bucket. Unscoreable tasks are
// omitted entirely.
func BucketTally(tasks []domain.Task) map[Bucket]int {
	tally := make(map[Bucket]int, 3)
	for _, t := range tasks {
		if ts, ok := Task(t); ok {
			tally[ts.Bucket]++
		}
	}
	return tally
}

// DeliveryDelta returns the signed whole days between the progress update
// and the due date: negative means early, zero on time, positive late. ok is
// false when either date is unavailable.
func DeliveryDelta(t domain.Task) (int, bool) {
	if t.ProgressUpdatedAt == nil {
		return 0, false
	}
	due, ok := t.DueDay()
	if !ok {
		return 0, false
	}
	return domain.DaysBetween(*t.ProgressUpdatedAt, due), true
}

// DeliveryLabel renders a delivery delta the way the task detail table shows
// it.
func DeliveryLabel(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("Early by %d %s", -days, plural(-days))
	case days == 0:
		return "On Time"
	default:
		return fmt.Sprintf("Delayed by %d %s", days, plural(days))
	}
}

func plural(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
