package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/queryvalidator/internal/common/transport"
	"github.com/jonesrussell/queryvalidator/internal/config"
	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/executor"
	"github.com/jonesrussell/queryvalidator/internal/extract"
	"github.com/jonesrussell/queryvalidator/internal/history"
	"github.com/jonesrussell/queryvalidator/internal/logger"
	"github.com/jonesrussell/queryvalidator/internal/output"
	"github.com/jonesrussell/queryvalidator/internal/report"
	"github.com/jonesrussell/queryvalidator/internal/runner"
)

// Pipeline runs one full validation: extract, measure, classify and write
// artifacts. It is reusable across runs but not safe for concurrent Run calls.
type Pipeline struct {
	extractors []extract.Extractor
	executor   runner.Executor
	thresholds domain.Thresholds
	paths      report.Paths
	sinks      []runner.Observer
	history    *HistoryComponents
	logger     logger.Interface
}

// SetupPipeline creates the pipeline described by deps.Config, including the
// optional history and index sinks.
func SetupPipeline(ctx context.Context, deps *CommandDeps) *Pipeline {
	cfg := deps.Config
	log := deps.Logger
	thresholds := cfg.DomainThresholds()

	p := &Pipeline{
		extractors: BuildExtractors(cfg, log),
		executor: executor.New(executor.Config{
			BaseURL:  cfg.Endpoint.URL,
			Timeouts: endpointTimeouts(cfg),
		}, log),
		thresholds: thresholds,
		paths: report.Paths{
			All:    cfg.Output.AllQueries,
			Failed: cfg.Output.FailedQueries,
			Report: cfg.Output.Report,
		},
		logger: log,
	}

	if h := SetupHistory(ctx, cfg.History, log); h != nil {
		p.history = h
		p.sinks = append(p.sinks, history.NewRecorder(ctx, h.Repo, thresholds, log))
	}
	if indexer := SetupIndexer(ctx, cfg, log); indexer != nil {
		p.sinks = append(p.sinks, indexer)
	}

	return p
}

// BuildExtractors returns the enabled extractors in their fixed order:
// local, catalog, dashboards.
func BuildExtractors(cfg *config.Config, log logger.Interface) []extract.Extractor {
	src := cfg.Sources
	var extractors []extract.Extractor

	if src.Local {
		extractors = append(extractors, extract.NewLocalExtractor(extract.LocalConfig{
			Root:          src.Path,
			Extensions:    src.Extensions,
			ExcludeSuffix: src.ExcludeSuffix,
			DialectTag:    src.DialectTag,
			Marker:        src.Marker,
		}, log))
	}
	if src.Catalog {
		client := transport.NewHTTPClient(endpointTimeouts(cfg))
		extractors = append(extractors, extract.NewCatalogExtractor(src.CatalogURL, src.UserAgent, client, log))
	}
	if src.Dashboards {
		extractors = append(extractors, extract.NewDashboardExtractor(extract.DashboardConfig{
			Pages:      src.DashboardURLs,
			LinkMarker: src.DashboardLinkMarker,
			UserAgent:  src.UserAgent,
			Timeout:    cfg.Endpoint.ConnectTimeout + cfg.Endpoint.ReadTimeout,
		}, nil, log))
	}

	return extractors
}

func endpointTimeouts(cfg *config.Config) transport.Timeouts {
	return transport.Timeouts{
		Connect: cfg.Endpoint.ConnectTimeout,
		Read:    cfg.Endpoint.ReadTimeout,
	}
}

// Run performs one validation run. observers receive every event after the
// artifact writer and the configured sinks. The returned error reports only
// artifact failures; the summary is valid either way.
func (p *Pipeline) Run(ctx context.Context, observers ...runner.Observer) (domain.RunSummary, error) {
	records := extract.Collect(ctx, p.logger, p.extractors...)

	artifacts, err := output.Open(p.paths, p.thresholds, p.logger)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("open artifacts: %w", err)
	}
	defer func() { _ = artifacts.Close() }()

	all := make([]runner.Observer, 0, 1+len(p.sinks)+len(observers))
	all = append(all, artifacts)
	all = append(all, p.sinks...)
	all = append(all, observers...)

	summary := runner.New(p.executor, p.thresholds, p.logger, runner.WithObservers(all...)).Run(ctx, records)

	if artifactErr := artifacts.Err(); artifactErr != nil {
		return summary, fmt.Errorf("write artifacts: %w", artifactErr)
	}
	return summary, nil
}

// Paths returns the artifact locations.
func (p *Pipeline) Paths() report.Paths {
	return p.paths
}

// Thresholds returns the latency thresholds used for classification.
func (p *Pipeline) Thresholds() domain.Thresholds {
	return p.thresholds
}

// History returns the run repository, or nil when history is disabled.
func (p *Pipeline) History() *history.RunRepository {
	if p.history == nil {
		return nil
	}
	return p.history.Repo
}

// Close releases the history connection.
func (p *Pipeline) Close() error {
	return p.history.Close()
}
