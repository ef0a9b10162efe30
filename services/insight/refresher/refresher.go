// Package refresher recomputes the dashboard statistics on a cron schedule,
// exports them as Prometheus gauges and publishes a digest event for
// downstream consumers.
package refresher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/kafka"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/report"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/score"
	"github.com/GOKULKRISHNA7868/tas-insight/pkg/retry"
	"github.com/GOKULKRISHNA7868/tas-insight/pkg/telemetry"
)

// StatsSource is the slice of the report service the refresher needs.
type StatsSource interface {
	Stats(ctx context.Context) (*report.Overview, error)
}

// Digest is the reports.generated message body: a compact summary of one
// refreshed overview.
type Digest struct {
	DigestID     string               `json:"digest_id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Tasks        int                  `json:"tasks"`
	TasksOverdue int                  `json:"tasks_overdue"`
	Projects     int                  `json:"projects"`
	TeamMembers  int                  `json:"team_members"`
	ScoreBuckets map[score.Bucket]int `json:"score_buckets"`
}

// Refresher runs Stats on a schedule. Each run retries transient failures
// with backoff before being counted as failed.
type Refresher struct {
	source   StatsSource
	producer kafka.Producer
	spec     string
	backoff  time.Duration
	logger   *slog.Logger
}

// New creates a refresher. spec is a standard 5-field cron expression.
// producer may be nil, which disables digest publishing. backoff is the base
// delay between retry attempts within one run; <= 0 means 2s.
func New(source StatsSource, producer kafka.Producer, spec string, backoff time.Duration, logger *slog.Logger) *Refresher {
	if backoff <= 0 {
		backoff = 2 * time.Second
	}
	return &Refresher{source: source, producer: producer, spec: spec, backoff: backoff, logger: logger}
}

// Start registers the cron entry and runs one refresh immediately so the
// gauges are populated before the first scheduled tick. The cron runner stops
// when ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(r.spec, func() { r.Refresh(ctx) }); err != nil {
		return fmt.Errorf("cron spec %q: %w", r.spec, err)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()

	go r.Refresh(ctx)

	r.logger.Info("refresher started", slog.String("cron", r.spec))
	return nil
}

// Refresh runs one refresh cycle end to end.
func (r *Refresher) Refresh(ctx context.Context) {
	var overview *report.Overview
	err := retry.Do(ctx, retry.Config{
		MaxAttempts: 3,
		BaseDelay:   r.backoff,
		OnRetry: func(attempt int, err error) {
			r.logger.Warn("stats refresh attempt failed",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
		},
	}, func() error {
		var err error
		overview, err = r.source.Stats(ctx)
		return err
	})
	if err != nil {
		telemetry.RefreshRuns.WithLabelValues("error").Inc()
		r.logger.Error("stats refresh failed", slog.String("error", err.Error()))
		return
	}

	setGauges(overview)

	if r.producer != nil {
		if err := r.publishDigest(ctx, overview); err != nil {
			// The gauges are already updated; a digest publish failure does
			// not undo the refresh.
			r.logger.Error("digest publish failed", slog.String("error", err.Error()))
		}
	}

	telemetry.RefreshRuns.WithLabelValues("ok").Inc()
	r.logger.Info("stats refreshed",
		slog.Int("tasks", overview.Tasks.Total),
		slog.Int("tasks_overdue", overview.Tasks.Overdue),
		slog.Int("projects", overview.Projects.Total),
	)
}

func setGauges(o *report.Overview) {
	telemetry.TasksTotal.Set(float64(o.Tasks.Total))
	telemetry.TasksOverdue.Set(float64(o.Tasks.Overdue))
	telemetry.TasksByStatus.WithLabelValues("pending").Set(float64(o.Tasks.Pending))
	telemetry.TasksByStatus.WithLabelValues("in_progress").Set(float64(o.Tasks.InProgress))
	telemetry.TasksByStatus.WithLabelValues("completed").Set(float64(o.Tasks.Completed))
	telemetry.ProjectsByStatus.WithLabelValues("active").Set(float64(o.Projects.Active))
	telemetry.ProjectsByStatus.WithLabelValues("completed").Set(float64(o.Projects.Completed))
	telemetry.ProjectsByStatus.WithLabelValues("delayed").Set(float64(o.Projects.Delayed))
	telemetry.TeamMembersTotal.Set(float64(o.Teams.TotalMembers))
}

func (r *Refresher) publishDigest(ctx context.Context, o *report.Overview) error {
	digest := Digest{
		DigestID:     uuid.New().String(),
		GeneratedAt:  o.GeneratedAt,
		Tasks:        o.Tasks.Total,
		TasksOverdue: o.Tasks.Overdue,
		Projects:     o.Projects.Total,
		TeamMembers:  o.Teams.TotalMembers,
		ScoreBuckets: o.ScoreBuckets,
	}
	payload, err := json.Marshal(digest)
	if err != nil {
		return fmt.Errorf("marshal digest: %w", err)
	}
	return r.producer.Publish(ctx, kafka.TopicReportsGenerated, digest.DigestID, payload)
}
