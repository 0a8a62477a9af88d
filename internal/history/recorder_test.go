package history_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/history"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

type fakeSaver struct {
	summary  domain.RunSummary
	outcomes []history.Outcome
	err      error
}

func (f *fakeSaver) SaveRun(_ context.Context, s domain.RunSummary, o []history.Outcome) error {
	f.summary = s
	f.outcomes = append([]history.Outcome(nil), o...)
	return f.err
}

func TestRecorder_SavesOnFinish(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	rec := history.NewRecorder(context.Background(), saver, domain.DefaultThresholds(), logger.NewNoOp())

	summary, outcomes := sampleRun()
	rec.OnStart(summary.RunID, len(outcomes))
	for _, o := range outcomes {
		rec.OnOutcome(o.Position, o.Outcome)
	}
	rec.OnFinish(summary)

	assert.Equal(t, "run-1", saver.summary.RunID)
	require.Len(t, saver.outcomes, 2)
	assert.Equal(t, domain.BucketSlow, saver.outcomes[0].Bucket)
	assert.Equal(t, domain.BucketFailed, saver.outcomes[1].Bucket)
}

func TestRecorder_ResetsBetweenRuns(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{}
	rec := history.NewRecorder(context.Background(), saver, domain.DefaultThresholds(), logger.NewNoOp())

	summary, outcomes := sampleRun()
	rec.OnStart("first", 1)
	rec.OnOutcome(1, outcomes[0].Outcome)
	rec.OnFinish(summary)

	rec.OnStart("second", 0)
	rec.OnFinish(domain.RunSummary{RunID: "second"})

	assert.Equal(t, "second", saver.summary.RunID)
	assert.Empty(t, saver.outcomes)
}

func TestRecorder_SaveErrorIsNotFatal(t *testing.T) {
	t.Parallel()

	saver := &fakeSaver{err: errors.New("connection refused")}
	rec := history.NewRecorder(context.Background(), saver, domain.DefaultThresholds(), logger.NewNoOp())

	assert.NotPanics(t, func() { rec.OnFinish(domain.RunSummary{RunID: "run-x"}) })
}
