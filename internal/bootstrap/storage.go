package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/queryvalidator/internal/config"
	"github.com/jonesrussell/queryvalidator/internal/logger"
	"github.com/jonesrussell/queryvalidator/internal/storage"
)

// SetupIndexer connects to Elasticsearch and returns an outcome indexer with
// its index in place. It returns nil when indexing is disabled or the
// cluster is unreachable.
func SetupIndexer(ctx context.Context, cfg *config.Config, log logger.Interface) *storage.OutcomeIndexer {
	esCfg := cfg.Elasticsearch
	if !esCfg.Enabled {
		return nil
	}

	indexer, err := createIndexer(ctx, cfg, log)
	if err != nil {
		log.Warn("Outcome indexing disabled", "error", err)
		return nil
	}

	log.Info("Outcome indexing enabled", "index", esCfg.IndexName)
	return indexer
}

func createIndexer(ctx context.Context, cfg *config.Config, log logger.Interface) (*storage.OutcomeIndexer, error) {
	esCfg := cfg.Elasticsearch
	client, err := storage.NewClient(ctx, esCfg, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	indexer := storage.NewOutcomeIndexer(ctx, client, esCfg.IndexName, esCfg.Timeout, cfg.DomainThresholds(), log)
	if indexErr := indexer.EnsureIndex(ctx); indexErr != nil {
		return nil, fmt.Errorf("ensure index: %w", indexErr)
	}
	return indexer, nil
}
