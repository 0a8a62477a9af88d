package runner

import "github.com/jonesrussell/queryvalidator/internal/domain"

// Observer is notified synchronously as a run progresses. Indexes are
// 1-based positions in the record list.
type Observer interface {
	// OnStart is called once before the first query.
	OnStart(runID string, total int)
	// OnQuery is called before a record is executed.
	OnQuery(index int, record domain.QueryRecord)
	// OnOutcome is called after a record is measured.
	OnOutcome(index int, outcome domain.ExecutionOutcome)
	// OnFinish is called once with the final summary.
	OnFinish(summary domain.RunSummary)
}

// BaseObserver implements Observer with no-ops. Embed it to handle a subset
// of the events.
type BaseObserver struct{}

// OnStart implements Observer.
func (BaseObserver) OnStart(string, int) {}

// OnQuery implements Observer.
func (BaseObserver) OnQuery(int, domain.QueryRecord) {}

// OnOutcome implements Observer.
func (BaseObserver) OnOutcome(int, domain.ExecutionOutcome) {}

// OnFinish implements Observer.
func (BaseObserver) OnFinish(domain.RunSummary) {}
