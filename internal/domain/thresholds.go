package domain

// Default latency thresholds in milliseconds.
const (
	DefaultSlowMs     = 1000
	DefaultVerySlowMs = 2500
)

// Bucket is the latency classification of an outcome.
type Bucket string

const (
	// BucketNone is a successful query below the slow threshold, or without timings.
	BucketNone Bucket = "ok"
	// BucketSlow is a successful query in [slow, very slow).
	BucketSlow Bucket = "slow"
	// BucketVerySlow is a successful query at or above the very slow threshold.
	BucketVerySlow Bucket = "very_slow"
	// BucketFailed is a query that failed to execute.
	BucketFailed Bucket = "failed"
)

// Thresholds gate both the hot re-run decision and the final bucket.
// The value is constructed once at startup and never mutated.
type Thresholds struct {
	SlowMs     float64 `json:"slow_ms"`
	VerySlowMs float64 `json:"very_slow_ms"`
}

// DefaultThresholds returns the 1000 ms / 2500 ms thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{SlowMs: DefaultSlowMs, VerySlowMs: DefaultVerySlowMs}
}

// NeedsHotRun reports whether a cold latency warrants a second execution.
func (t Thresholds) NeedsHotRun(coldMs float64) bool {
	return coldMs >= t.SlowMs
}

// Bucket classifies a latency.
func (t Thresholds) Bucket(ms float64) Bucket {
	switch {
	case ms >= t.VerySlowMs:
		return BucketVerySlow
	case ms >= t.SlowMs:
		return BucketSlow
	default:
		return BucketNone
	}
}

// Classify returns the bucket of an outcome.
func (t Thresholds) Classify(o ExecutionOutcome) Bucket {
	if !o.OK {
		return BucketFailed
	}
	ms, ok := o.ClassificationLatency()
	if !ok {
		return BucketNone
	}
	return t.Bucket(ms)
}
