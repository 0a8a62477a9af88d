package history

import (
	"context"
	"time"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
	"github.com/jonesrussell/queryvalidator/internal/runner"
)

const saveTimeout = 30 * time.Second

// Saver persists a finished run.
type Saver interface {
	SaveRun(ctx context.Context, summary domain.RunSummary, outcomes []Outcome) error
}

var _ runner.Observer = (*Recorder)(nil)

// Recorder buffers the outcomes of a run and saves them when it finishes.
// Save failures are logged only.
type Recorder struct {
	runner.BaseObserver

	ctx        context.Context
	saver      Saver
	thresholds domain.Thresholds
	logger     logger.Interface
	outcomes   []Outcome
}

// NewRecorder creates a Recorder. ctx bounds the final save.
func NewRecorder(ctx context.Context, saver Saver, thresholds domain.Thresholds, log logger.Interface) *Recorder {
	return &Recorder{
		ctx:        ctx,
		saver:      saver,
		thresholds: thresholds,
		logger:     log.WithComponent("history"),
	}
}

// OnStart resets the buffer.
func (r *Recorder) OnStart(string, int) {
	r.outcomes = r.outcomes[:0]
}

// OnOutcome buffers one outcome.
func (r *Recorder) OnOutcome(index int, o domain.ExecutionOutcome) {
	r.outcomes = append(r.outcomes, Outcome{Position: index, Outcome: o, Bucket: r.thresholds.Classify(o)})
}

// OnFinish saves the run.
func (r *Recorder) OnFinish(summary domain.RunSummary) {
	ctx, cancel := context.WithTimeout(r.ctx, saveTimeout)
	defer cancel()

	if err := r.saver.SaveRun(ctx, summary, r.outcomes); err != nil {
		r.logger.Error("Failed to save run history", "run_id", summary.RunID, "error", err)
		return
	}
	r.logger.Info("Run history saved", "run_id", summary.RunID, "outcomes", len(r.outcomes))
}
