package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/report"
)

var paths = report.Paths{
	All:    "all_queries.sql",
	Failed: "failed_queries.sql",
	Report: "query_validation_report.txt",
}

func TestFullLogEntry(t *testing.T) {
	t.Parallel()

	rec := domain.QueryRecord{Origin: "docs/a.md", Title: "Revenue by day", SQL: "SELECT 1;"}
	assert.Equal(t, "-- docs/a.md\n--- Revenue by day\nSELECT 1;\n\n", report.FullLogEntry(rec))
}

func TestFailedLogEntry(t *testing.T) {
	t.Parallel()

	o := domain.FailedOutcome(domain.QueryRecord{Origin: "docs/a.md", Title: "Bad", SQL: "SELECT x FROM t;"}, "unknown column")
	assert.Equal(t, "-- docs/a.md\n--- Bad\nSELECT x FROM t;\n-- ERROR: unknown column\n\n", report.FailedLogEntry(o))
}

func TestRenderSummary_AllSections(t *testing.T) {
	t.Parallel()

	s := domain.RunSummary{
		Total:     4,
		Succeeded: 3,
		Failed:    1,
		FailedOutcomes: []domain.ExecutionOutcome{
			domain.FailedOutcome(domain.QueryRecord{Origin: "docs/a.md", Title: "Bad"}, "unknown column"),
		},
		VerySlowOutcomes: []domain.ExecutionOutcome{success("heavy", ms(4000), nil)},
		SlowOutcomes:     []domain.ExecutionOutcome{success("warm", ms(3200), ms(1800))},
	}

	want := "============================\n" +
		"Executed 4 queries\n" +
		"✅  Succeeded: 3\n" +
		"❌  Failed:    1\n" +
		"============================\n" +
		"\n" +
		"❌ Failed queries:\n" +
		"  - docs/a.md  [Bad]: unknown column\n" +
		"\n" +
		"🔥 Very slow queries (≥ 2.5 s hot run):\n" +
		"  - docs/heavy.md  [heavy] cold=4000.000 ms\n" +
		"\n" +
		"⚠️  Slow queries (1–2.5 s hot run):\n" +
		"  - docs/warm.md  [warm] cold=3200.000 ms, hot=1800.000 ms\n" +
		"\n" +
		"Results written to:\n" +
		"  • all_queries.sql\n" +
		"  • failed_queries.sql\n" +
		"  • query_validation_report.txt"

	assert.Equal(t, want, report.RenderSummary(s, domain.DefaultThresholds(), paths))
}

func TestRenderSummary_EmptyRun(t *testing.T) {
	t.Parallel()

	got := report.RenderSummary(domain.RunSummary{}, domain.DefaultThresholds(), paths)

	assert.Contains(t, got, "Executed 0 queries")
	assert.NotContains(t, got, "Failed queries:")
	assert.NotContains(t, got, "Slow queries")
	assert.Contains(t, got, "Results written to:")
}

func TestRenderSummary_CustomThresholds(t *testing.T) {
	t.Parallel()

	s := domain.RunSummary{Total: 1, Succeeded: 1, SlowOutcomes: []domain.ExecutionOutcome{success("x", ms(600), ms(550))}}
	got := report.RenderSummary(s, domain.Thresholds{SlowMs: 500, VerySlowMs: 1000}, paths)

	assert.Contains(t, got, "⚠️  Slow queries (0.5–1 s hot run):")
}

func TestTiming(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cold=12.346 ms", report.Timing(success("a", ms(12.3456), nil)))
	assert.Equal(t, "cold=3200.000 ms, hot=1800.000 ms", report.Timing(success("a", ms(3200), ms(1800))))
	assert.Empty(t, report.Timing(success("a", nil, nil)))
}
