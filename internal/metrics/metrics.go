// Package metrics provides metrics collection and reporting functionality.
package metrics

import (
	"sync"
	"time"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/runner"
)

var _ runner.Observer = (*Metrics)(nil)

// Metrics holds cumulative validation metrics across runs plus the
// progress of the active run. It is safe for concurrent use.
type Metrics struct {
	thresholds domain.Thresholds
	now        func() time.Time

	// mu protects the fields below.
	mu sync.Mutex
	// startTime is when the metrics collection began.
	startTime time.Time

	runs          int64
	executed      int64
	failed        int64
	slow          int64
	verySlow      int64
	hotRuns       int64
	lastRunID     string
	lastFinished  time.Time
	lastDuration  time.Duration
	totalDuration time.Duration

	position      int
	total         int
	currentOrigin string
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	StartTime       time.Time `json:"start_time"`
	Runs            int64     `json:"runs"`
	Executed        int64     `json:"executed"`
	Failed          int64     `json:"failed"`
	Slow            int64     `json:"slow"`
	VerySlow        int64     `json:"very_slow"`
	HotRuns         int64     `json:"hot_runs"`
	LastRunID       string    `json:"last_run_id,omitempty"`
	LastFinishedAt  time.Time `json:"last_finished_at,omitzero"`
	LastRunDuration string    `json:"last_run_duration,omitempty"`
	Position        int       `json:"position"`
	Total           int       `json:"total"`
	CurrentOrigin   string    `json:"current_origin,omitempty"`
}

// NewMetrics creates a new Metrics instance classifying with thresholds.
func NewMetrics(thresholds domain.Thresholds) *Metrics {
	m := &Metrics{thresholds: thresholds, now: time.Now}
	m.startTime = m.now()
	return m
}

// OnStart resets the progress of the active run.
func (m *Metrics) OnStart(_ string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = 0
	m.total = total
	m.currentOrigin = ""
}

// OnQuery records the query being executed.
func (m *Metrics) OnQuery(index int, rec domain.QueryRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = index
	m.currentOrigin = rec.Origin
}

// OnOutcome counts one outcome.
func (m *Metrics) OnOutcome(_ int, o domain.ExecutionOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.executed++
	if o.HotLatencyMs != nil {
		m.hotRuns++
	}
	switch m.thresholds.Classify(o) {
	case domain.BucketFailed:
		m.failed++
	case domain.BucketSlow:
		m.slow++
	case domain.BucketVerySlow:
		m.verySlow++
	case domain.BucketNone:
	}
}

// OnFinish records the run duration.
func (m *Metrics) OnFinish(summary domain.RunSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs++
	m.lastRunID = summary.RunID
	m.lastFinished = summary.FinishedAt
	m.lastDuration = summary.Duration()
	m.totalDuration += m.lastDuration
	m.currentOrigin = ""
}

// GetProcessingDuration returns the total time spent in finished runs.
func (m *Metrics) GetProcessingDuration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalDuration
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		StartTime:      m.startTime,
		Runs:           m.runs,
		Executed:       m.executed,
		Failed:         m.failed,
		Slow:           m.slow,
		VerySlow:       m.verySlow,
		HotRuns:        m.hotRuns,
		LastRunID:      m.lastRunID,
		LastFinishedAt: m.lastFinished,
		Position:       m.position,
		Total:          m.total,
		CurrentOrigin:  m.currentOrigin,
	}
	if m.runs > 0 {
		s.LastRunDuration = m.lastDuration.String()
	}
	return s
}

// ResetMetrics resets all counters to their initial values.
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.startTime = m.now()
	m.runs, m.executed, m.failed, m.slow, m.verySlow, m.hotRuns = 0, 0, 0, 0, 0, 0
	m.lastRunID = ""
	m.lastFinished = time.Time{}
	m.lastDuration, m.totalDuration = 0, 0
	m.position, m.total = 0, 0
	m.currentOrigin = ""
}
