// Package scheduler triggers validation runs on a cron schedule and on demand,
// with at most one run active at a time.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/queryvalidator/internal/config/schedule"
	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

// ErrAlreadyStarted is returned by Start on a running scheduler.
var ErrAlreadyStarted = errors.New("scheduler already started")

// RunFunc performs one complete validation run.
type RunFunc func(ctx context.Context) (domain.RunSummary, error)

// Trigger names the cause of a run in logs.
type Trigger string

// Run triggers
const (
	TriggerCron   Trigger = "cron"
	TriggerManual Trigger = "manual"
	TriggerStart  Trigger = "start"
)

// Scheduler owns the cron loop and the single-run guard.
type Scheduler struct {
	logger     logger.Interface
	run        RunFunc
	spec       string
	runOnStart bool
	cron       *cron.Cron

	mu      sync.Mutex
	running bool
	started bool
	latest  *domain.RunSummary
	lastErr error

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Scheduler for cfg. The cron expression is validated here.
func New(cfg *schedule.Config, run RunFunc, log logger.Interface) (*Scheduler, error) {
	parser := schedule.Parser()
	if _, err := parser.Parse(cfg.Cron); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", cfg.Cron, err)
	}

	return &Scheduler{
		logger:     log.WithComponent("scheduler"),
		run:        run,
		spec:       cfg.Cron,
		runOnStart: cfg.RunOnStart,
		cron:       cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}, nil
}

// Start registers the schedule and starts the cron loop. Runs use a context
// derived from ctx, canceled by Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	if _, err := s.cron.AddFunc(s.spec, func() { s.TryRun(TriggerCron) }); err != nil {
		return fmt.Errorf("failed to schedule validation: %w", err)
	}
	s.cron.Start()
	s.logger.Info("Scheduler started", "cron", s.spec)

	if s.runOnStart {
		s.TryRun(TriggerStart)
	}
	return nil
}

// Stop halts the cron loop, cancels an active run and waits for it to return.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")

	cronCtx := s.cron.Stop()
	<-cronCtx.Done()

	s.mu.Lock()
	s.started = false
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

// TryRun starts a run in the background unless one is already active. It
// reports whether a run was started.
func (s *Scheduler) TryRun(trigger Trigger) bool {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		s.logger.Warn("Run requested before scheduler start", "trigger", trigger)
		return false
	}
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Validation run already in progress, skipping", "trigger", trigger)
		return false
	}
	s.running = true
	ctx := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.execute(ctx, trigger)
	}()
	return true
}

func (s *Scheduler) execute(ctx context.Context, trigger Trigger) {
	s.logger.Info("Validation run triggered", "trigger", trigger)

	summary, err := s.run(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.lastErr = err
	if err != nil {
		s.logger.Error("Validation run failed", "trigger", trigger, "error", err)
		return
	}
	s.latest = &summary
}

// Running reports whether a run is in progress.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Latest returns the summary of the last completed run.
func (s *Scheduler) Latest() (domain.RunSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return domain.RunSummary{}, false
	}
	return *s.latest, true
}

// LastError returns the error of the most recent run, if it failed.
func (s *Scheduler) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// NextRun returns the next scheduled activation, or the zero time before Start.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
