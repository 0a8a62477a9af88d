// Package extract pulls candidate SQL queries out of documentation sources.
//
// Three variants implement Extractor: LocalExtractor scans a markdown tree,
// CatalogExtractor reads the demo console catalog and DashboardExtractor
// scrapes dashboard pages. A failing source degrades to an empty sequence
// and a log entry; extraction never returns an error to the caller.
package extract

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

// Source names
const (
	SourceLocal     = "local"
	SourceCatalog   = "catalog"
	SourceDashboard = "dashboard"
)

// Extractor produces a finite sequence of query records from one source.
type Extractor interface {
	// Name identifies the source in logs.
	Name() string
	// Extract yields records in source order. It stops early when ctx is done.
	Extract(ctx context.Context) iter.Seq[domain.QueryRecord]
}

// Collect drains every extractor concurrently and concatenates the results
// in argument order, so the record order is independent of fetch timing.
func Collect(ctx context.Context, log logger.Interface, extractors ...Extractor) []domain.QueryRecord {
	batches := make([][]domain.QueryRecord, len(extractors))

	g, gctx := errgroup.WithContext(ctx)
	for i, ex := range extractors {
		g.Go(func() error {
			for rec := range ex.Extract(gctx) {
				batches[i] = append(batches[i], rec)
			}
			log.Info("Source extracted", "source", ex.Name(), "records", len(batches[i]))
			return nil
		})
	}
	// Extractors never fail, so Wait only synchronizes.
	_ = g.Wait()

	total := 0
	for _, b := range batches {
		total += len(b)
	}

	records := make([]domain.QueryRecord, 0, total)
	for _, b := range batches {
		records = append(records, b...)
	}
	return records
}

// emptySeq is returned by sources that failed before producing anything.
func emptySeq() iter.Seq[domain.QueryRecord] {
	return func(func(domain.QueryRecord) bool) {}
}
