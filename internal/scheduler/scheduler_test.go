package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/queryvalidator/internal/config/schedule"
	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
	"github.com/jonesrussell/queryvalidator/internal/scheduler"
)

func newScheduler(t *testing.T, run scheduler.RunFunc) *scheduler.Scheduler {
	t.Helper()
	s, err := scheduler.New(&schedule.Config{Cron: "@daily"}, run, logger.NewNoOp())
	require.NoError(t, err)
	return s
}

func TestNew_InvalidCron(t *testing.T) {
	t.Parallel()

	_, err := scheduler.New(&schedule.Config{Cron: "every tuesday"}, nil, logger.NewNoOp())
	assert.Error(t, err)
}

func TestScheduler_SingleActiveRun(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var calls atomic.Int32
	s := newScheduler(t, func(ctx context.Context) (domain.RunSummary, error) {
		calls.Add(1)
		<-release
		return domain.RunSummary{RunID: "run-1", Total: 3}, nil
	})
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)

	_, ok := s.Latest()
	assert.False(t, ok)

	assert.True(t, s.TryRun(scheduler.TriggerManual))
	assert.True(t, s.Running())
	assert.False(t, s.TryRun(scheduler.TriggerCron))

	close(release)
	require.Eventually(t, func() bool { return !s.Running() }, time.Second, 10*time.Millisecond)

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "run-1", latest.RunID)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, s.NextRun().IsZero())
}

func TestScheduler_RunOnStart(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	s, err := scheduler.New(&schedule.Config{Cron: "@daily", RunOnStart: true},
		func(context.Context) (domain.RunSummary, error) {
			close(done)
			return domain.RunSummary{RunID: "boot"}, nil
		}, logger.NewNoOp())
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run on start was not triggered")
	}
}

func TestScheduler_FailedRunKeepsPreviousSummary(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	s := newScheduler(t, func(context.Context) (domain.RunSummary, error) {
		if fail.Load() {
			return domain.RunSummary{}, errors.New("artifacts unwritable")
		}
		return domain.RunSummary{RunID: "good"}, nil
	})
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)

	require.True(t, s.TryRun(scheduler.TriggerManual))
	require.Eventually(t, func() bool { _, ok := s.Latest(); return ok }, time.Second, 10*time.Millisecond)

	fail.Store(true)
	require.Eventually(t, func() bool { return s.TryRun(scheduler.TriggerManual) }, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return s.LastError() != nil }, time.Second, 10*time.Millisecond)

	latest, _ := s.Latest()
	assert.Equal(t, "good", latest.RunID)
}

func TestScheduler_StopCancelsActiveRun(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	s := newScheduler(t, func(ctx context.Context) (domain.RunSummary, error) {
		close(started)
		<-ctx.Done()
		return domain.RunSummary{}, ctx.Err()
	})
	require.NoError(t, s.Start(context.Background()))
	require.True(t, s.TryRun(scheduler.TriggerManual))
	<-started

	s.Stop()

	assert.False(t, s.Running())
	assert.False(t, s.TryRun(scheduler.TriggerManual))
}

func TestScheduler_StartTwice(t *testing.T) {
	t.Parallel()

	s := newScheduler(t, func(context.Context) (domain.RunSummary, error) { return domain.RunSummary{}, nil })
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)

	assert.ErrorIs(t, s.Start(context.Background()), scheduler.ErrAlreadyStarted)
}
