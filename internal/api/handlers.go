package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/history"
	"github.com/jonesrussell/queryvalidator/internal/logger"
	"github.com/jonesrussell/queryvalidator/internal/metrics"
	"github.com/jonesrussell/queryvalidator/internal/scheduler"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 200
)

// RunController is the scheduler surface exposed over HTTP.
type RunController interface {
	TryRun(trigger scheduler.Trigger) bool
	Running() bool
	Latest() (domain.RunSummary, bool)
	NextRun() time.Time
}

// RunLister lists persisted runs.
type RunLister interface {
	LatestRuns(ctx context.Context, limit int) ([]history.Run, error)
}

// MetricsSource exposes validation counters.
type MetricsSource interface {
	Snapshot() metrics.Snapshot
}

// RunsHandler serves the validation run endpoints.
type RunsHandler struct {
	runs    RunController
	history RunLister
	metrics MetricsSource
	logger  logger.Interface
}

// NewRunsHandler creates a RunsHandler. lister may be nil when run history
// is disabled.
func NewRunsHandler(runs RunController, lister RunLister, log logger.Interface) *RunsHandler {
	return &RunsHandler{runs: runs, history: lister, logger: log}
}

// WithMetrics enables GET /api/v1/metrics.
func (h *RunsHandler) WithMetrics(m MetricsSource) *RunsHandler {
	h.metrics = m
	return h
}

// Health handles GET /health.
func (h *RunsHandler) Health(c *gin.Context) {
	resp := gin.H{
		"status":  "ok",
		"running": h.runs.Running(),
	}
	if next := h.runs.NextRun(); !next.IsZero() {
		resp["next_run"] = next
	}
	c.JSON(http.StatusOK, resp)
}

// Latest handles GET /api/v1/runs/latest.
func (h *RunsHandler) Latest(c *gin.Context) {
	summary, ok := h.runs.Latest()
	if !ok {
		respondNotFound(c, "completed run")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Trigger handles POST /api/v1/runs.
func (h *RunsHandler) Trigger(c *gin.Context) {
	if !h.runs.TryRun(scheduler.TriggerManual) {
		respondError(c, http.StatusConflict, "a validation run is already in progress")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

// List handles GET /api/v1/runs.
func (h *RunsHandler) List(c *gin.Context) {
	if h.history == nil {
		respondError(c, http.StatusServiceUnavailable, "run history is disabled")
		return
	}

	limit := parseLimit(c, defaultRunsLimit, maxRunsLimit)
	runs, err := h.history.LatestRuns(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list runs", "error", err)
		respondInternalError(c, "failed to list runs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// Metrics handles GET /api/v1/metrics.
func (h *RunsHandler) Metrics(c *gin.Context) {
	if h.metrics == nil {
		respondError(c, http.StatusServiceUnavailable, "metrics are disabled")
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
