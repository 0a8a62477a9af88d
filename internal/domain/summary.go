package domain

import "time"

// RunSummary aggregates one validation run. The outcome lists keep the
// order in which outcomes were observed.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	FailedOutcomes   []ExecutionOutcome `json:"failed_outcomes"`
	SlowOutcomes     []ExecutionOutcome `json:"slow_outcomes"`
	VerySlowOutcomes []ExecutionOutcome `json:"very_slow_outcomes"`
}

// Duration returns the wall-clock time of the run.
func (s RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
