package score

import (
	"strings"
	"time"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
)

// WorkloadComparison contrasts an employee's assigned task count with the
// average across the other members of their team.
type WorkloadComparison struct {
	Employee int     `json:"employee"`
	Average  float64 `json:"average"`
}

// SeriesPoint is one bucket of the completion/reassignment time series.
type SeriesPoint struct {
	Completed  int `json:"completed"`
	Reassigned int `json:"reassigned"`
}

// Performance is the derived per-employee composite. Rates are percentages
// in [0,100]; TotalScore weighs completion 60% and timeliness 40%.
type Performance struct {
	EmployeeID     string                 `json:"employee_id"`
	Total          int                    `json:"total"`
	Completed      int                    `json:"completed"`
	OnTime         int                    `json:"on_time"`
	Reassigned     int                    `json:"reassigned"`
	CompletionRate float64                `json:"completion_rate"`
	OnTimeRate     float64                `json:"on_time_rate"`
	TotalScore     float64                `json:"total_performance_score"`
	Workload       WorkloadComparison     `json:"workload_comparison"`
	HasTeam        bool                   `json:"has_team"`
	ByDate         map[string]SeriesPoint `json:"by_date,omitempty"`
	ByMonth        map[string]SeriesPoint `json:"by_month,omitempty"`
}

// EmployeePerformance aggregates one employee's assigned tasks out of the
// full task set. teams supplies the peer group for the workload comparison;
// now anchors the series bucket for tasks whose progress update timestamp is
// missing.
//
// A task is on time iff it is completed and its progress-update day is on or
// before its due day. Tasks without an update timestamp or a parsable due
// date never count as on time.
func EmployeePerformance(employeeID string, tasks []domain.Task, teams []domain.Team, now time.Time) Performance {
	perf := Performance{
		EmployeeID: employeeID,
		ByDate:     make(map[string]SeriesPoint),
		ByMonth:    make(map[string]SeriesPoint),
	}

	for _, t := range tasks {
		if strings.TrimSpace(t.AssignedTo) != employeeID {
			continue
		}
		perf.Total++

		completedAt := now
		if t.ProgressUpdatedAt != nil {
			completedAt = *t.ProgressUpdatedAt
		}
		dateKey := domain.Day(completedAt).Format(domain.DueDateLayout)
		monthKey := dateKey[:7]

		day := perf.ByDate[dateKey]
		month := perf.ByMonth[monthKey]

		if t.ProgressStatus.IsCompleted() {
			perf.Completed++
			if onTime(t) {
				perf.OnTime++
			}
			day.Completed++
			month.Completed++
		}
		if n := t.Reassignments(); n > 0 {
			perf.Reassigned += n
			day.Reassigned += n
			month.Reassigned += n
		}

		perf.ByDate[dateKey] = day
		perf.ByMonth[monthKey] = month
	}

	if perf.Total > 0 {
		perf.CompletionRate = float64(perf.Completed) / float64(perf.Total) * 100
	}
	if perf.Completed > 0 {
		perf.OnTimeRate = float64(perf.OnTime) / float64(perf.Completed) * 100
	}
	perf.TotalScore = perf.CompletionRate*0.6 + perf.OnTimeRate*0.4

	perf.Workload = WorkloadComparison{Employee: perf.Total}
	if team, ok := teamOf(teams, employeeID); ok {
		perf.HasTeam = true
		perf.Workload.Average = peerAverage(team, employeeID, tasks)
	}

	return perf
}

func onTime(t domain.Task) bool {
	if t.ProgressUpdatedAt == nil {
		return false
	}
	due, ok := t.DueDay()
	if !ok {
		return false
	}
	return !domain.Day(*t.ProgressUpdatedAt).After(due)
}

func teamOf(teams []domain.Team, employeeID string) (domain.Team, bool) {
	for _, team := range teams {
		for _, m := range team.Members {
			if strings.TrimSpace(m) == employeeID {
				return team, true
			}
		}
	}
	return domain.Team{}, false
}

// peerAverage is the task count across all other team members divided by the
// number of those members. Duplicate member entries count once.
func peerAverage(team domain.Team, employeeID string, tasks []domain.Task) float64 {
	peers := make(map[string]struct{})
	for _, m := range team.Members {
		m = strings.TrimSpace(m)
		if m != "" && m != employeeID {
			peers[m] = struct{}{}
		}
	}
	if len(peers) == 0 {
		return 0
	}

	peerTasks := 0
	for _, t := range tasks {
		if _, ok := peers[strings.TrimSpace(t.AssignedTo)]; ok {
			peerTasks++
		}
	}
	return float64(peerTasks) / float64(len(peers))
}
