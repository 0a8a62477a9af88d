package runner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
	"github.com/jonesrussell/queryvalidator/internal/report"
)

// Runner executes records one at a time in order.
type Runner struct {
	exec       Executor
	thresholds domain.Thresholds
	observers  []Observer
	logger     logger.Interface

	now   func() time.Time
	newID func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithObservers appends observers, notified in the given order.
func WithObservers(observers ...Observer) Option {
	return func(r *Runner) {
		r.observers = append(r.observers, observers...)
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// WithRunIDFunc overrides run ID generation.
func WithRunIDFunc(fn func() string) Option {
	return func(r *Runner) {
		r.newID = fn
	}
}

// New creates a Runner.
func New(exec Executor, thresholds domain.Thresholds, log logger.Interface, opts ...Option) *Runner {
	r := &Runner{
		exec:       exec,
		thresholds: thresholds,
		logger:     log.WithComponent("runner"),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run measures every record and returns the run summary. Each outcome is
// delivered to all observers before the next query starts.
func (r *Runner) Run(ctx context.Context, records []domain.QueryRecord) domain.RunSummary {
	runID := r.newID()
	log := r.logger.WithRunID(runID)
	classifier := report.NewClassifier(r.thresholds)

	startedAt := r.now()
	log.Info("Validation run started", "queries", len(records))
	for _, o := range r.observers {
		o.OnStart(runID, len(records))
	}

	for i, rec := range records {
		index := i + 1
		for _, o := range r.observers {
			o.OnQuery(index, rec)
		}

		outcome := Measure(ctx, r.exec, r.thresholds, rec)
		classifier.Observe(outcome)
		if !outcome.OK {
			log.Debug("Query failed", "origin", rec.Origin, "title", rec.Title, "error", outcome.ErrorMessage())
		}

		for _, o := range r.observers {
			o.OnOutcome(index, outcome)
		}
	}

	summary := classifier.Summary()
	summary.RunID = runID
	summary.StartedAt = startedAt
	summary.FinishedAt = r.now()

	log.Info("Validation run finished",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"slow", len(summary.SlowOutcomes),
		"very_slow", len(summary.VerySlowOutcomes),
		"duration", summary.Duration(),
	)
	for _, o := range r.observers {
		o.OnFinish(summary)
	}
	return summary
}
