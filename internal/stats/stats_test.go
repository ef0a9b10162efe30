package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/stats"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func TestProjects(t *testing.T) {
	projects := []domain.Project{
		{Status: domain.ProjectActive},
		{Status: domain.ProjectActive},
		{Status: domain.ProjectCompleted},
		{Status: domain.ProjectDelayed},
		{Status: "unknown"},
	}

	got := stats.Projects(projects)
	assert.Equal(t, stats.ProjectStats{Total: 5, Active: 2, Completed: 1, Delayed: 1}, got)
}

func TestTasks_PartitionAndOverdue(t *testing.T) {
	tasks := []domain.Task{
		{ProgressStatus: domain.ProgressCompleted, DueDate: "2024-06-01"},
		{ProgressStatus: domain.ProgressInProgress, DueDate: "2024-06-01"},
		{ProgressStatus: domain.ProgressPending, DueDate: "2024-06-09"},
		{ProgressStatus: domain.ProgressPending, DueDate: "2024-06-20"},
		{ProgressStatus: "", DueDate: "not-a-date"},
	}

	got := stats.Tasks(tasks, now)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 3, got.Pending, "unrecognized statuses count as pending")
	assert.Equal(t, 1, got.InProgress)
	assert.Equal(t, 1, got.Completed)
	// Overdue: the in-progress task from June 1 and the pending one from
	// June 9. Completed tasks never count, nor do unparsable dates.
	assert.Equal(t, 2, got.Overdue)
}

func TestTasks_DueTodayIsOverdueOncePastMidnight(t *testing.T) {
	tasks := []domain.Task{{ProgressStatus: domain.ProgressPending, DueDate: "2024-06-10"}}

	got := stats.Tasks(tasks, now)
	assert.Equal(t, 1, got.Overdue, "due date parses to midnight, strictly before noon")
}

func TestTasks_Empty(t *testing.T) {
	assert.Equal(t, stats.TaskStats{}, stats.Tasks(nil, now))
}

func TestTeams_MemberUnionAndDistributions(t *testing.T) {
	teams := []domain.Team{
		{ID: "t1", Members: []string{"e1", "e2"}},
		{ID: "t2", Members: []string{"e2", "e3", "e3", " "}},
	}
	employees := []domain.Employee{
		{ID: "e1", Department: "Engineering", Role: "admin", ActiveProjects: 2},
		{ID: "e2", Department: "Engineering", Role: "member", ActiveProjects: 1},
		{ID: "e3", Department: "Design", Role: "member"},
		{ID: "e4"},
	}

	got := stats.Teams(teams, employees)
	assert.Equal(t, 3, got.TotalMembers, "membership is a set across teams")
	assert.Equal(t, 3, got.ActiveProjects)
	assert.Equal(t, map[string]int{"Engineering": 2, "Design": 1}, got.Departments)
	assert.Equal(t, map[string]int{"admin": 1, "member": 2}, got.Roles)
}
