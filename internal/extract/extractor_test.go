package extract_test

import (
	"context"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/extract"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

type staticExtractor struct {
	name    string
	delay   time.Duration
	records []domain.QueryRecord
}

func (s staticExtractor) Name() string { return s.name }

func (s staticExtractor) Extract(context.Context) iter.Seq[domain.QueryRecord] {
	return func(yield func(domain.QueryRecord) bool) {
		time.Sleep(s.delay)
		for _, r := range s.records {
			if !yield(r) {
				return
			}
		}
	}
}

func TestCollect_PreservesArgumentOrder(t *testing.T) {
	t.Parallel()

	slow := staticExtractor{name: "local", delay: 50 * time.Millisecond, records: []domain.QueryRecord{
		{Origin: "a.md", Title: "A", SQL: "SELECT 1;"},
		{Origin: "a.md", Title: "A", SQL: "SELECT 1;"},
	}}
	fast := staticExtractor{name: "catalog", records: []domain.QueryRecord{
		{Origin: "catalog", Title: "B", SQL: "SELECT 2;"},
	}}
	empty := staticExtractor{name: "dashboard"}

	records := extract.Collect(context.Background(), logger.NewNoOp(), slow, fast, empty)

	assert.Equal(t, []string{"A", "A", "B"}, []string{records[0].Title, records[1].Title, records[2].Title})
}

func TestCollect_NoExtractors(t *testing.T) {
	t.Parallel()

	assert.Empty(t, extract.Collect(context.Background(), logger.NewNoOp()))
}
