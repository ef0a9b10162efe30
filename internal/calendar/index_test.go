package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/calendar"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

var now = time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)

func task(id, due string, status domain.ProgressStatus) domain.Task {
	return domain.Task{ID: id, DueDate: due, ProgressStatus: status}
}

func TestBuildIndex_EachValidTaskInExactlyOneBucket(t *testing.T) {
	tasks := []domain.Task{
		task("a", "2024-06-09", domain.ProgressPending),
		task("b", "2024-06-09", domain.ProgressCompleted),
		task("c", "2024-06-12", domain.ProgressInProgress),
		task("d", "", domain.ProgressPending),
		task("e", "garbage", domain.ProgressPending),
	}

	index := calendar.BuildIndex(tasks, now)

	total := 0
	for _, entries := range index {
		total += len(entries)
	}
	assert.Equal(t, 3, total, "tasks without a parsable due date must be excluded")
	require.Len(t, index["2024-06-09"], 2)
	require.Len(t, index["2024-06-12"], 1)
}

func TestBuildIndex_Markers(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		want calendar.Marker
	}{
		{"completed", task("a", "2024-06-01", domain.ProgressCompleted), calendar.MarkerDone},
		{"in progress", task("b", "2024-06-01", domain.ProgressInProgress), calendar.MarkerActive},
		{"pending past due", task("c", "2024-06-09", domain.ProgressPending), calendar.MarkerOverdue},
		{"pending due today", task("d", "2024-06-10", domain.ProgressPending), calendar.MarkerPending},
		{"pending future", task("e", "2024-06-20", domain.ProgressPending), calendar.MarkerPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := calendar.BuildIndex([]domain.Task{tt.task}, now)
			require.Len(t, index, 1)
			for _, entries := range index {
				assert.Equal(t, tt.want, entries[0].Marker)
			}
		})
	}
}

func TestBuildIndex_KeyEqualsDueDate(t *testing.T) {
	index := calendar.BuildIndex([]domain.Task{task("a", "2024-07-01", domain.ProgressPending)}, now)
	entries, ok := index["2024-07-01"]
	require.True(t, ok)
	assert.Equal(t, "a", entries[0].Task.ID)
}

func TestUpcoming_Window(t *testing.T) {
	tasks := []domain.Task{
		task("today", "2024-06-10", domain.ProgressPending),
		task("in3", "2024-06-13", domain.ProgressInProgress),
		task("in4", "2024-06-14", domain.ProgressPending),
		task("yesterday", "2024-06-09", domain.ProgressPending),
		task("done", "2024-06-11", domain.ProgressCompleted),
		task("nodate", "", domain.ProgressPending),
	}

	got := calendar.Upcoming(tasks, now)
	ids := make([]string, 0, len(got))
	for _, t := range got {
		ids = append(ids, t.ID)
	}
	assert.Equal(t, []string{"today", "in3"}, ids)
}
