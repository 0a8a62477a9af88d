package domain

// NanosPerMilli converts server-side execute timings (ns) to milliseconds.
const NanosPerMilli = 1_000_000

// ExecutionOutcome is the result of executing one QueryRecord.
type ExecutionOutcome struct {
	Record QueryRecord `json:"record"`
	OK     bool        `json:"ok"`
	Error  *string     `json:"error,omitempty"`

	// Latencies are only set for successful executions that reported timings.
	ColdLatencyMs *float64 `json:"cold_latency_ms,omitempty"`
	HotLatencyMs  *float64 `json:"hot_latency_ms,omitempty"`
}

// FailedOutcome builds a failed outcome carrying the given message.
func FailedOutcome(record QueryRecord, message string) ExecutionOutcome {
	return ExecutionOutcome{
		Record: record,
		OK:     false,
		Error:  &message,
	}
}

// ErrorMessage returns the failure message or an empty string.
func (o ExecutionOutcome) ErrorMessage() string {
	if o.Error == nil {
		return ""
	}
	return *o.Error
}

// ClassificationLatency returns the latency used for bucketing: the hot run
// when present, else the cold run.
func (o ExecutionOutcome) ClassificationLatency() (float64, bool) {
	if o.HotLatencyMs != nil {
		return *o.HotLatencyMs, true
	}
	if o.ColdLatencyMs != nil {
		return *o.ColdLatencyMs, true
	}
	return 0, false
}

// NanosToMillis converts an execute timing in nanoseconds to milliseconds.
func NanosToMillis(ns int64) float64 {
	return float64(ns) / NanosPerMilli
}
