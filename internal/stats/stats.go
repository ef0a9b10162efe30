// Package stats aggregates raw record counts into the dashboard-level
// statistics: project totals by status, task totals by progress with an
// independent overdue count, and team composition distributions.
package stats

import (
	"strings"
	"time"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

// ProjectStats partitions projects by their status field.
type ProjectStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Delayed   int `json:"delayed"`
}

// Projects tallies the project set in one pass.
func Projects(projects []domain.Project) ProjectStats {
	var s ProjectStats
	s.Total = len(projects)
	for _, p := range projects {
		switch p.Status {
		case domain.ProjectActive:
			s.Active++
		case domain.ProjectCompleted:
			s.Completed++
		case domain.ProjectDelayed:
			s.Delayed++
		}
	}
	return s
}

// TaskStats partitions tasks by progress status. Overdue is counted
// independently: a task adds to it when its due date (day granularity) lies
// strictly before now and it is not completed.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}

// Tasks tallies the task set in a single pass. Every task lands in exactly
// one of pending/in_progress/completed; unrecognized statuses count as
// pending. Tasks without a parsable due date never count as overdue.
func Tasks(tasks []domain.Task, now time.Time) TaskStats {
	var s TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.ProgressStatus {
		case domain.ProgressCompleted:
			s.Completed++
		case domain.ProgressInProgress:
			s.InProgress++
		default:
			s.Pending++
		}

		if t.ProgressStatus.IsCompleted() {
			continue
		}
		if due, ok := t.DueDay(); ok && due.Before(now) {
			s.Overdue++
		}
	}
	return s
}

// TeamStats summarizes team composition: distinct members across all teams,
// the sum of the optional per-employee active-projects counter, and the
// department / role frequency distributions over all employees.
type TeamStats struct {
	TotalMembers   int            `json:"total_members"`
	ActiveProjects int            `json:"active_projects"`
	Departments    map[string]int `json:"departments"`
	Roles          map[string]int `json:"roles"`
}

// Teams computes team statistics. A member appearing in several teams (or
// listed twice in one) counts once.
func Teams(teams []domain.Team, employees []domain.Employee) TeamStats {
	s := TeamStats{
		Departments: make(map[string]int),
		Roles:       make(map[string]int),
	}

	members := make(map[string]struct{})
	for _, team := range teams {
		for _, id := range team.Members {
			if id = strings.TrimSpace(id); id != "" {
				members[id] = struct{}{}
			}
		}
	}
	s.TotalMembers = len(members)

	for _, e := range employees {
		s.ActiveProjects += e.ActiveProjects
		if e.Department != "" {
			s.Departments[e.Department]++
		}
		if e.Role != "" {
			s.Roles[e.Role]++
		}
	}
	return s
}
