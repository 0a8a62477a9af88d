// Package runner drives the sequential validation sweep and the cold/hot
// measurement protocol.
package runner

import (
	"context"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/executor"
)

// Executor runs one SQL statement.
type Executor interface {
	Execute(ctx context.Context, sql string) executor.Result
}

// phase is a step of the per-query measurement.
type phase int

const (
	phaseCold phase = iota
	phaseDecide
	phaseHot
	phaseDone
)

// Measure executes record once, and a second time when the first (cold)
// latency reaches the slow threshold. A hot run that fails or reports no
// timing leaves the cold latency as the classification latency.
func Measure(ctx context.Context, exec Executor, thresholds domain.Thresholds, record domain.QueryRecord) domain.ExecutionOutcome {
	var (
		outcome = domain.ExecutionOutcome{Record: record}
		coldMs  float64
	)

	for p := phaseCold; p != phaseDone; {
		switch p {
		case phaseCold:
			res := exec.Execute(ctx, record.SQL)
			if !res.OK {
				return domain.FailedOutcome(record, res.Error)
			}
			outcome.OK = true
			if res.LatencyNs == nil {
				return outcome
			}
			coldMs = domain.NanosToMillis(*res.LatencyNs)
			outcome.ColdLatencyMs = &coldMs
			p = phaseDecide

		case phaseDecide:
			if thresholds.NeedsHotRun(coldMs) {
				p = phaseHot
			} else {
				p = phaseDone
			}

		case phaseHot:
			res := exec.Execute(ctx, record.SQL)
			if res.OK && res.LatencyNs != nil {
				hotMs := domain.NanosToMillis(*res.LatencyNs)
				outcome.HotLatencyMs = &hotMs
			}
			p = phaseDone
		}
	}

	return outcome
}
