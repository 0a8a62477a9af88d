// Package config provides configuration management for the query validator.
// It handles loading, validation, and access to configuration values from
// YAML files, .env files, environment variables and command-line flags using Viper.
package config

import (
	"fmt"

	"github.com/jonesrussell/queryvalidator/internal/config/app"
	"github.com/jonesrussell/queryvalidator/internal/config/database"
	"github.com/jonesrussell/queryvalidator/internal/config/elasticsearch"
	"github.com/jonesrussell/queryvalidator/internal/config/endpoint"
	"github.com/jonesrussell/queryvalidator/internal/config/output"
	"github.com/jonesrussell/queryvalidator/internal/config/schedule"
	"github.com/jonesrussell/queryvalidator/internal/config/server"
	"github.com/jonesrussell/queryvalidator/internal/config/sources"
	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

// Config represents the application configuration.
type Config struct {
	// App holds application metadata
	App *app.Config `mapstructure:"app"`
	// Logger holds logger settings
	Logger *logger.Config `mapstructure:"logger"`
	// Endpoint is the query-serving REST API
	Endpoint *endpoint.Config `mapstructure:"endpoint"`
	// Thresholds are the slow / very slow latency limits
	Thresholds *ThresholdsConfig `mapstructure:"thresholds"`
	// Sources configures the three query extractors
	Sources *sources.Config `mapstructure:"sources"`
	// Output holds the artifact paths
	Output *output.Config `mapstructure:"output"`
	// History is the optional Postgres run history
	History *database.Config `mapstructure:"history"`
	// Elasticsearch is the optional outcome index
	Elasticsearch *elasticsearch.Config `mapstructure:"elasticsearch"`
	// Server is the status API used by the serve command
	Server *server.Config `mapstructure:"server"`
	// Schedule drives periodic runs in the serve command
	Schedule *schedule.Config `mapstructure:"schedule"`
}

// ThresholdsConfig holds latency thresholds in milliseconds.
type ThresholdsConfig struct {
	SlowMs     float64 `mapstructure:"slow_ms"`
	VerySlowMs float64 `mapstructure:"very_slow_ms"`
}

// Validate checks the thresholds are positive and ordered.
func (c *ThresholdsConfig) Validate() error {
	if c.SlowMs <= 0 {
		return &ValidationError{Field: "thresholds.slow_ms", Value: c.SlowMs, Reason: "must be positive"}
	}
	if c.VerySlowMs <= c.SlowMs {
		return &ValidationError{
			Field:  "thresholds.very_slow_ms",
			Value:  c.VerySlowMs,
			Reason: "must be greater than thresholds.slow_ms",
		}
	}
	return nil
}

// NewDefault returns a configuration populated with defaults only.
func NewDefault() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// setDefaults initializes nil sections with their defaults.
func setDefaults(cfg *Config) {
	if cfg.App == nil {
		cfg.App = app.NewConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = &logger.Config{Level: logger.DefaultLevel, Encoding: logger.DefaultEncoding}
	}
	if cfg.Endpoint == nil {
		cfg.Endpoint = endpoint.NewConfig()
	}
	if cfg.Thresholds == nil {
		cfg.Thresholds = &ThresholdsConfig{SlowMs: domain.DefaultSlowMs, VerySlowMs: domain.DefaultVerySlowMs}
	}
	if cfg.Sources == nil {
		cfg.Sources = sources.NewConfig()
	}
	if cfg.Output == nil {
		cfg.Output = output.NewConfig()
	}
	if cfg.History == nil {
		cfg.History = database.NewConfig()
	}
	if cfg.Elasticsearch == nil {
		cfg.Elasticsearch = elasticsearch.NewConfig()
	}
	if cfg.Server == nil {
		cfg.Server = server.NewConfig()
	}
	if cfg.Schedule == nil {
		cfg.Schedule = schedule.NewConfig()
	}
}

// DomainThresholds returns the immutable thresholds value passed to the
// runner and the classifier.
func (c *Config) DomainThresholds() domain.Thresholds {
	return domain.Thresholds{SlowMs: c.Thresholds.SlowMs, VerySlowMs: c.Thresholds.VerySlowMs}
}

// Validate validates the sections used by a validation run.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Endpoint.Validate(); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if err := c.Sources.Validate(); err != nil {
		return fmt.Errorf("sources: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.History.Validate(); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if err := c.Elasticsearch.Validate(); err != nil {
		return fmt.Errorf("elasticsearch: %w", err)
	}
	return nil
}

// ValidateServe additionally validates the sections used by the serve command.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	return nil
}
