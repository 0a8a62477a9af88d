// Package storage indexes validation outcomes in Elasticsearch.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/queryvalidator/internal/config/elasticsearch"
)

// NewClient creates an Elasticsearch client from cfg and verifies it with a ping.
// A nil transport uses the client default.
func NewClient(ctx context.Context, cfg *elasticsearch.Config, transport http.RoundTripper) (*es.Client, error) {
	if cfg == nil {
		return nil, errors.New("elasticsearch configuration is required")
	}

	client, err := es.NewClient(clientConfig(cfg, transport))
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	res, err := client.Ping(client.Ping.WithContext(pingCtx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	return client, nil
}

func clientConfig(cfg *elasticsearch.Config, transport http.RoundTripper) es.Config {
	clientCfg := es.Config{
		Addresses: cfg.Addresses,
		Transport: transport,
	}

	if cfg.APIKey != "" {
		clientCfg.APIKey = cfg.APIKey
	} else if cfg.Username != "" && cfg.Password != "" {
		clientCfg.Username = cfg.Username
		clientCfg.Password = cfg.Password
	}

	return clientCfg
}
