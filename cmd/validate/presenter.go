package validate

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/executor"
	"github.com/jonesrussell/queryvalidator/internal/report"
	"github.com/jonesrussell/queryvalidator/internal/runner"
)

var (
	slowColors     = text.Colors{text.FgYellow}
	verySlowColors = text.Colors{text.FgHiRed, text.Bold}
	failedColors   = text.Colors{text.FgRed}
)

var _ runner.Observer = (*Presenter)(nil)

// Presenter prints run progress and the final summary to the console.
type Presenter struct {
	out        io.Writer
	thresholds domain.Thresholds
	paths      report.Paths
	endpoint   string
	searchRoot string
	color      bool

	total int
}

// NewPresenter creates a Presenter writing to out.
func NewPresenter(out io.Writer, thresholds domain.Thresholds, paths report.Paths, endpoint, searchRoot string, color bool) *Presenter {
	return &Presenter{
		out:        out,
		thresholds: thresholds,
		paths:      paths,
		endpoint:   endpoint,
		searchRoot: searchRoot,
		color:      color,
	}
}

// OnStart prints the run header.
func (p *Presenter) OnStart(_ string, total int) {
	p.total = total
	fmt.Fprintf(p.out, "QuestDB REST URL: %s\n", executor.ExecURL(p.endpoint))
	if p.searchRoot != "" {
		fmt.Fprintf(p.out, "Searching in: %s\n", p.searchRoot)
	}
	fmt.Fprintf(p.out, "Found %d queries to execute.\n\n", total)
}

// OnQuery prints the progress line before execution.
func (p *Presenter) OnQuery(index int, rec domain.QueryRecord) {
	fmt.Fprintf(p.out, "[%d/%d] Executing: %s  [%s]\n", index, p.total, rec.Origin, rec.Title)
}

// OnOutcome prints the result line.
func (p *Presenter) OnOutcome(_ int, o domain.ExecutionOutcome) {
	fmt.Fprintf(p.out, "   %s\n", p.resultLine(o))
}

// OnFinish prints the failed and slow queries as a table, then the report.
func (p *Presenter) OnFinish(summary domain.RunSummary) {
	if rows := summaryRows(summary); len(rows) > 0 {
		tw := table.NewWriter()
		tw.SetOutputMirror(p.out)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Status", "Origin", "Title", "Detail"})
		tw.AppendRows(rows)
		fmt.Fprintln(p.out)
		tw.Render()
	}
	fmt.Fprintf(p.out, "\n%s\n", report.RenderSummary(summary, p.thresholds, p.paths))
}

func (p *Presenter) resultLine(o domain.ExecutionOutcome) string {
	if !o.OK {
		return p.paint(failedColors, "❌ Failed: "+o.ErrorMessage())
	}
	if o.ColdLatencyMs == nil {
		return "✅ Success"
	}

	detail := fmt.Sprintf("execute: %.3f ms", *o.ColdLatencyMs)
	if o.HotLatencyMs != nil {
		detail = fmt.Sprintf("cold: %.3f ms, hot: %.3f ms", *o.ColdLatencyMs, *o.HotLatencyMs)
	}

	switch p.thresholds.Classify(o) {
	case domain.BucketVerySlow:
		return p.paint(verySlowColors, "🔥  Success ("+detail+")")
	case domain.BucketSlow:
		return p.paint(slowColors, "⚠️  Success ("+detail+")")
	default:
		return "✅ Success (" + detail + ")"
	}
}

func (p *Presenter) paint(colors text.Colors, s string) string {
	if !p.color {
		return s
	}
	return colors.Sprint(s)
}

func summaryRows(s domain.RunSummary) []table.Row {
	rows := make([]table.Row, 0, len(s.FailedOutcomes)+len(s.VerySlowOutcomes)+len(s.SlowOutcomes))
	for _, o := range s.FailedOutcomes {
		rows = append(rows, table.Row{"failed", o.Record.Origin, o.Record.Title, o.ErrorMessage()})
	}
	for _, o := range s.VerySlowOutcomes {
		rows = append(rows, table.Row{"very slow", o.Record.Origin, o.Record.Title, report.Timing(o)})
	}
	for _, o := range s.SlowOutcomes {
		rows = append(rows, table.Row{"slow", o.Record.Origin, o.Record.Title, report.Timing(o)})
	}
	return rows
}
