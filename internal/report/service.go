// Package report composes the record loader with the pure aggregation
// packages. It owns the only I/O in the read path: collection fetches fan
// out concurrently, and any fetch failure fails the whole report so derived
// values are never computed from a snapshot known to be incomplete.
package report

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/calendar"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/join"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/rollup"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/score"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/stats"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/store"
	"github.com/GOKULKRISHNA7868/tas-insight/pkg/telemetry"
)

// Service builds dashboard and performance reports from store snapshots.
// Each invocation works on its own local copies of the fetched collections;
// the service itself holds no mutable state.
type Service struct {
	loader store.Loader
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a report service over the given loader.
func NewService(loader store.Loader, logger *slog.Logger) *Service {
	return &Service{loader: loader, logger: logger, now: time.Now}
}

// Dashboard is the per-employee landing view: enriched assigned tasks, their
// counts, the due-date calendar index and the upcoming-due alert list.
type Dashboard struct {
	Employee *domain.Employee            `json:"employee,omitempty"`
	Counts   stats.TaskStats             `json:"counts"`
	Tasks    []join.EnrichedTask         `json:"tasks"`
	Calendar map[string][]calendar.Entry `json:"calendar"`
	Upcoming []domain.Task               `json:"upcoming,omitempty"`
}

// TaskDetail is one row of the performance detail table.
type TaskDetail struct {
	join.EnrichedTask
	Delivery string           `json:"delivery,omitempty"`
	Score    *score.TaskScore `json:"score,omitempty"`
}

// PerformanceReport is the per-employee performance view. NoTeam marks the
// terminal "not on any team" state, distinct from a team whose member
// references failed to resolve.
type PerformanceReport struct {
	Employee    *domain.Employee  `json:"employee,omitempty"`
	NoTeam      bool              `json:"no_team,omitempty"`
	Performance score.Performance `json:"performance"`
	Tasks       []TaskDetail      `json:"tasks,omitempty"`
}

// Overview bundles the dashboard-level statistics.
type Overview struct {
	Projects     stats.ProjectStats   `json:"projects"`
	Tasks        stats.TaskStats      `json:"tasks"`
	Teams        stats.TeamStats      `json:"teams"`
	ScoreBuckets map[score.Bucket]int `json:"score_buckets"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

// Dashboard builds the dashboard for one employee. Returns
// domain.EmployeeNotFoundError when the employee record does not exist.
func (s *Service) Dashboard(ctx context.Context, employeeID string) (_ *Dashboard, err error) {
	ctx, span := s.start(ctx, "report.dashboard", employeeID)
	defer func() { s.finish(span, "dashboard", err) }()

	emp, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.loader.Tasks(ctx, store.FieldEq("assigned_to", employeeID))
	if err != nil {
		return nil, err
	}

	// One batched lookup per reference set instead of a query per task.
	var (
		employees []domain.Employee
		projects  []domain.Project
	)
	err = s.parallel(
		func() (e error) {
			employees, e = s.loader.Employees(ctx, store.FieldIn("id", join.ReferencedEmployeeIDs(tasks)))
			return
		},
		func() (e error) {
			projects, e = s.loader.Projects(ctx, store.FieldIn("id", join.ReferencedProjectIDs(tasks)))
			return
		},
	)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &Dashboard{
		Employee: emp,
		Counts:   stats.Tasks(tasks, now),
		Tasks:    join.Tasks(tasks, employees, projects),
		Calendar: calendar.BuildIndex(tasks, now),
		Upcoming: calendar.Upcoming(tasks, now),
	}, nil
}

// Performance builds the performance report for one employee.
func (s *Service) Performance(ctx context.Context, employeeID string) (_ *PerformanceReport, err error) {
	ctx, span := s.start(ctx, "report.performance", employeeID)
	defer func() { s.finish(span, "performance", err) }()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	emp := findEmployee(snap.employees, employeeID)
	if emp == nil {
		return nil, &domain.EmployeeNotFoundError{EmployeeID: employeeID}
	}
	if len(snap.teams) == 0 {
		// Terminal state for this view: nothing to compare against.
		return &PerformanceReport{Employee: emp, NoTeam: true}, nil
	}

	now := s.now()
	perf := score.EmployeePerformance(employeeID, snap.tasks, snap.teams, now)

	var assigned []domain.Task
	for _, t := range snap.tasks {
		if strings.TrimSpace(t.AssignedTo) == employeeID {
			assigned = append(assigned, t)
		}
	}

	enriched := join.Tasks(assigned, snap.employees, snap.projects)
	details := make([]TaskDetail, 0, len(enriched))
	for i, et := range enriched {
		d := TaskDetail{EnrichedTask: et}
		if days, ok := score.DeliveryDelta(assigned[i]); ok {
			d.Delivery = score.DeliveryLabel(days)
		}
		if ts, ok := score.Task(assigned[i]); ok {
			d.Score = &ts
		}
		details = append(details, d)
	}

	return &PerformanceReport{
		Employee:    emp,
		Performance: perf,
		Tasks:       details,
	}, nil
}

// Teams builds the team rollup view.
func (s *Service) Teams(ctx context.Context) (_ []rollup.TeamView, err error) {
	ctx, span := s.start(ctx, "report.teams", "")
	defer func() { s.finish(span, "teams", err) }()

	var (
		teams     []domain.Team
		employees []domain.Employee
	)
	err = s.parallel(
		func() (e error) { teams, e = s.loader.Teams(ctx); return },
		func() (e error) { employees, e = s.loader.Employees(ctx); return },
	)
	if err != nil {
		return nil, err
	}
	return rollup.Teams(teams, employees), nil
}

// Stats builds the dashboard statistics overview.
func (s *Service) Stats(ctx context.Context) (_ *Overview, err error) {
	ctx, span := s.start(ctx, "report.stats", "")
	defer func() { s.finish(span, "stats", err) }()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &Overview{
		Projects:     stats.Projects(snap.projects),
		Tasks:        stats.Tasks(snap.tasks, now),
		Teams:        stats.Teams(snap.teams, snap.employees),
		ScoreBuckets: score.BucketTally(snap.tasks),
		GeneratedAt:  now,
	}, nil
}

// snapshot fetches all four collections concurrently. No ordering is imposed
// between the fetches; the first failures are joined into one error.
type snapshot struct {
	employees []domain.Employee
	projects  []domain.Project
	teams     []domain.Team
	tasks     []domain.Task
}

func (s *Service) snapshot(ctx context.Context) (*snapshot, error) {
	var snap snapshot
	err := s.parallel(
		func() (e error) { snap.employees, e = s.loader.Employees(ctx); return },
		func() (e error) { snap.projects, e = s.loader.Projects(ctx); return },
		func() (e error) { snap.teams, e = s.loader.Teams(ctx); return },
		func() (e error) { snap.tasks, e = s.loader.Tasks(ctx); return },
	)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Service) parallel(fns ...func() error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(fns))
	for i, fn := range fns {
		wg.Add(1)
		go func(i int, fn func() error) {
			defer wg.Done()
			errs[i] = fn()
		}(i, fn)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (s *Service) employee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employees, err := s.loader.Employees(ctx, store.FieldEq("id", employeeID))
	if err != nil {
		return nil, err
	}
	if emp := findEmployee(employees, employeeID); emp != nil {
		return emp, nil
	}
	return nil, &domain.EmployeeNotFoundError{EmployeeID: employeeID}
}

func findEmployee(employees []domain.Employee, id string) *domain.Employee {
	for i := range employees {
		if strings.TrimSpace(employees[i].ID) == id {
			return &employees[i]
		}
	}
	return nil
}

func (s *Service) start(ctx context.Context, spanName, employeeID string) (context.Context, *reportSpan) {
	ctx, span := otel.Tracer("report").Start(ctx, spanName)
	if employeeID != "" {
		span.SetAttributes(attribute.String("employee.id", employeeID))
	}
	return ctx, &reportSpan{Span: span, begun: time.Now()}
}

type reportSpan struct {
	trace.Span
	begun time.Time
}

func (s *Service) finish(span *reportSpan, kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "report failed")
	}
	telemetry.ReportsGenerated.WithLabelValues(kind, outcome).Inc()
	telemetry.ReportDurationSeconds.WithLabelValues(kind).Observe(time.Since(span.begun).Seconds())
	span.End()
}
