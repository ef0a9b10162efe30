package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GOKULKRISHNA7868/tas-insight/internal/domain"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/report"
	"github.com/GOKULKRISHNA7868/tas-insight/internal/rollup"
)

// Reporter is the slice of the report service the HTTP surface needs.
type Reporter interface {
	Dashboard(ctx context.Context, employeeID string) (*report.Dashboard, error)
	Performance(ctx context.Context, employeeID string) (*report.PerformanceReport, error)
	Teams(ctx context.Context) ([]rollup.TeamView, error)
	Stats(ctx context.Context) (*report.Overview, error)
}

// REST handles HTTP requests for the insight service. All endpoints are
// read-only; record mutation happens in the external application layer.
type REST struct {
	svc    Reporter
	ready  func(ctx context.Context) error
	logger *slog.Logger
}

// NewREST creates a new REST handler. ready is consulted by Readyz and should
// verify the backing store and cache connections.
func NewREST(svc Reporter, ready func(ctx context.Context) error, logger *slog.Logger) *REST {
	return &REST{svc: svc, ready: ready, logger: logger}
}

// GetDashboard handles GET /api/v1/dashboard/{employeeID}.
func (h *REST) GetDashboard(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	dash, err := h.svc.Dashboard(r.Context(), employeeID)
	if err != nil {
		h.writeReportError(w, "dashboard", employeeID, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// GetPerformance handles GET /api/v1/performance/{employeeID}.
func (h *REST) GetPerformance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	perf, err := h.svc.Performance(r.Context(), employeeID)
	if err != nil {
		h.writeReportError(w, "performance", employeeID, err)
		return
	}
	writeJSON(w, http.StatusOK, perf)
}

// GetTeams handles GET /api/v1/teams.
func (h *REST) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.Teams(r.Context())
	if err != nil {
		h.writeReportError(w, "teams", "", err)
		return
	}
	if teams == nil {
		teams = []rollup.TeamView{}
	}
	writeJSON(w, http.StatusOK, teams)
}

// GetStats handles GET /api/v1/stats.
func (h *REST) GetStats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeReportError(w, "stats", "", err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// Healthz handles GET /healthz.
func (h *REST) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Readyz handles GET /readyz. Checks store and cache connectivity.
func (h *REST) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.ready(ctx); err != nil {
		h.logger.Warn("readiness check failed", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "dependencies not ready")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

func (h *REST) employeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "employeeID"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "employee ID is required")
		return "", false
	}
	return id, true
}

func (h *REST) writeReportError(w http.ResponseWriter, kind, employeeID string, err error) {
	var notFound *domain.EmployeeNotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}

	log := h.logger.With(slog.String("report", kind))
	if employeeID != "" {
		log = log.With(slog.String("employee_id", employeeID))
	}

	var fetchErr *domain.CollectionFetchError
	if errors.As(err, &fetchErr) {
		log.Error("collection fetch failed",
			slog.String("collection", fetchErr.Collection),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "record store unavailable")
		return
	}

	log.Error("report failed", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "failed to build report")
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
