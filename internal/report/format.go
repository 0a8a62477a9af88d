package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonesrussell/queryvalidator/internal/domain"
)

const banner = "============================"

// Paths names the three artifacts listed at the end of the summary.
type Paths struct {
	All    string
	Failed string
	Report string
}

// FullLogEntry is the full-log block of one executed record.
func FullLogEntry(rec domain.QueryRecord) string {
	return fmt.Sprintf("-- %s\n--- %s\n%s\n\n", rec.Origin, rec.Title, rec.SQL)
}

// FailedLogEntry is the failed-log block of one failed outcome.
func FailedLogEntry(o domain.ExecutionOutcome) string {
	return fmt.Sprintf("-- %s\n--- %s\n%s\n-- ERROR: %s\n\n",
		o.Record.Origin, o.Record.Title, o.Record.SQL, o.ErrorMessage())
}

// RenderSummary renders the human-readable run report. Empty sections are
// omitted. The result has no trailing newline.
func RenderSummary(s domain.RunSummary, t domain.Thresholds, paths Paths) string {
	lines := []string{
		banner,
		fmt.Sprintf("Executed %d queries", s.Total),
		fmt.Sprintf("✅  Succeeded: %d", s.Succeeded),
		fmt.Sprintf("❌  Failed:    %d", s.Failed),
		banner + "\n",
	}

	if len(s.FailedOutcomes) > 0 {
		lines = append(lines, "❌ Failed queries:")
		for _, o := range s.FailedOutcomes {
			lines = append(lines, fmt.Sprintf("  - %s  [%s]: %s", o.Record.Origin, o.Record.Title, o.ErrorMessage()))
		}
		lines = append(lines, "")
	}

	if len(s.VerySlowOutcomes) > 0 {
		lines = append(lines, fmt.Sprintf("🔥 Very slow queries (≥ %s s hot run):", seconds(t.VerySlowMs)))
		lines = appendTimed(lines, s.VerySlowOutcomes)
		lines = append(lines, "")
	}

	if len(s.SlowOutcomes) > 0 {
		lines = append(lines, fmt.Sprintf("⚠️  Slow queries (%s–%s s hot run):", seconds(t.SlowMs), seconds(t.VerySlowMs)))
		lines = appendTimed(lines, s.SlowOutcomes)
		lines = append(lines, "")
	}

	lines = append(lines,
		"Results written to:",
		"  • "+paths.All,
		"  • "+paths.Failed,
		"  • "+paths.Report,
	)
	return strings.Join(lines, "\n")
}

func appendTimed(lines []string, outcomes []domain.ExecutionOutcome) []string {
	for _, o := range outcomes {
		lines = append(lines, fmt.Sprintf("  - %s  [%s] %s", o.Record.Origin, o.Record.Title, Timing(o)))
	}
	return lines
}

// Timing renders the latencies of a successful outcome, e.g.
// "cold=3200.000 ms, hot=1800.000 ms".
func Timing(o domain.ExecutionOutcome) string {
	if o.ColdLatencyMs == nil {
		return ""
	}
	text := fmt.Sprintf("cold=%.3f ms", *o.ColdLatencyMs)
	if o.HotLatencyMs != nil {
		text += fmt.Sprintf(", hot=%.3f ms", *o.HotLatencyMs)
	}
	return text
}

// seconds formats a millisecond threshold as seconds, e.g. 2500 -> "2.5".
func seconds(ms float64) string {
	return strconv.FormatFloat(ms/1000, 'f', -1, 64)
}
