// Package output writes the run artifacts: the full query log, the failed
// query log and the summary report.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
	"github.com/jonesrussell/queryvalidator/internal/report"
	"github.com/jonesrussell/queryvalidator/internal/runner"
)

const reportFileMode = 0o644

var _ runner.Observer = (*Artifacts)(nil)

// Artifacts is a runner observer that writes every outcome to the logs as
// soon as it is observed and the summary report when the run finishes.
type Artifacts struct {
	paths      report.Paths
	thresholds domain.Thresholds
	logger     logger.Interface

	all    io.WriteCloser
	failed io.WriteCloser

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
}

// Open truncates or creates both query logs.
func Open(paths report.Paths, thresholds domain.Thresholds, log logger.Interface) (*Artifacts, error) {
	all, err := os.Create(paths.All)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", paths.All, err)
	}
	failed, err := os.Create(paths.Failed)
	if err != nil {
		_ = all.Close()
		return nil, fmt.Errorf("failed to create %s: %w", paths.Failed, err)
	}

	return &Artifacts{
		paths:      paths,
		thresholds: thresholds,
		logger:     log.WithComponent("output"),
		all:        all,
		failed:     failed,
	}, nil
}

// Paths returns the artifact locations.
func (a *Artifacts) Paths() report.Paths {
	return a.paths
}

// OnStart implements runner.Observer.
func (a *Artifacts) OnStart(string, int) {}

// OnQuery implements runner.Observer.
func (a *Artifacts) OnQuery(int, domain.QueryRecord) {}

// OnOutcome appends the outcome to the full log, and to the failed log when
// the query failed.
func (a *Artifacts) OnOutcome(_ int, o domain.ExecutionOutcome) {
	a.write(a.all, a.paths.All, report.FullLogEntry(o.Record))
	if !o.OK {
		a.write(a.failed, a.paths.Failed, report.FailedLogEntry(o))
	}
}

// OnFinish writes the summary report and closes the logs.
func (a *Artifacts) OnFinish(summary domain.RunSummary) {
	text := report.RenderSummary(summary, a.thresholds, a.paths)
	if err := os.WriteFile(a.paths.Report, []byte(text), reportFileMode); err != nil {
		a.record(fmt.Errorf("failed to write %s: %w", a.paths.Report, err))
	}
	if err := a.Close(); err != nil {
		a.record(err)
	}
}

// Close closes both logs. It is safe to call more than once.
func (a *Artifacts) Close() error {
	var err error
	a.closeOnce.Do(func() {
		err = errors.Join(a.all.Close(), a.failed.Close())
	})
	return err
}

// Err returns the accumulated write errors, if any.
func (a *Artifacts) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *Artifacts) write(w io.Writer, path, entry string) {
	if _, err := io.WriteString(w, entry); err != nil {
		a.record(fmt.Errorf("failed to write %s: %w", path, err))
	}
}

func (a *Artifacts) record(err error) {
	a.logger.Error("Artifact write failed", "error", err)
	a.mu.Lock()
	a.err = errors.Join(a.err, err)
	a.mu.Unlock()
}
