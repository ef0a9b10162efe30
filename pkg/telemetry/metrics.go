package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ─── Reports ─────────────────────────────────────────────────────────────────

	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasinsight",
		Subsystem: "report",
		Name:      "generated_total",
		Help:      "Reports computed, labelled by kind and outcome.",
	}, []string{"kind", "outcome"})

	ReportDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tasinsight",
		Subsystem: "report",
		Name:      "duration_seconds",
		Help:      "End-to-end report computation time, fetch included.",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"kind"})

	// ─── Collection cache ────────────────────────────────────────────────────────

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasinsight",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Collection snapshot cache hits.",
	}, []string{"collection"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasinsight",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Collection snapshot cache misses.",
	}, []string{"collection"})

	CacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasinsight",
		Subsystem: "cache",
		Name:      "invalidations_total",
		Help:      "Cache entries dropped after record-change events.",
	}, []string{"collection"})

	// ─── HTTP surface ────────────────────────────────────────────────────────────

	RequestsRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tasinsight",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter.",
	})

	// ─── Scheduled refresh ───────────────────────────────────────────────────────

	RefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasinsight",
		Subsystem: "refresh",
		Name:      "runs_total",
		Help:      "Scheduled stat refresh runs by outcome.",
	}, []string{"outcome"})

	TasksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tasinsight",
		Subsystem: "snapshot",
		Name:      "tasks_total",
		Help:      "Tasks in the last refreshed snapshot.",
	})

	TasksOverdue = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tasinsight",
		Subsystem: "snapshot",
		Name:      "tasks_overdue",
		Help:      "Overdue tasks in the last refreshed snapshot.",
	})

	TasksByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tasinsight",
		Subsystem: "snapshot",
		Name:      "tasks_by_status",
		Help:      "Tasks in the last refreshed snapshot by progress status.",
	}, []string{"status"})

	ProjectsByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tasinsight",
		Subsystem: "snapshot",
		Name:      "projects_by_status",
		Help:      "Projects in the last refreshed snapshot by status.",
	}, []string{"status"})

	TeamMembersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tasinsight",
		Subsystem: "snapshot",
		Name:      "team_members_total",
		Help:      "Distinct team members in the last refreshed snapshot.",
	})
)
