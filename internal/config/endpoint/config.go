// Package endpoint provides configuration for the query-serving endpoint.
package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Default configuration values
const (
	DefaultURL            = "http://localhost:9000"
	DefaultConnectTimeout = 3 * time.Second
	DefaultReadTimeout    = 60 * time.Second
)

// Config holds the settings used to reach the QuestDB REST API.
type Config struct {
	// URL is the REST API base URL, e.g. http://localhost:9000
	URL string `mapstructure:"url"`
	// ConnectTimeout bounds dialing the endpoint
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	// ReadTimeout bounds waiting for and reading the response
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		URL:            DefaultURL,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("endpoint url must be specified")
	}
	parsed, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid endpoint url %q: %w", c.URL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid endpoint url scheme: %q", parsed.Scheme)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got %s", c.ConnectTimeout)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %s", c.ReadTimeout)
	}
	return nil
}
