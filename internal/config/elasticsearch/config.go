// Package elasticsearch provides Elasticsearch configuration management.
package elasticsearch

import (
	"fmt"
	"strings"
	"time"
)

// Default configuration values
const (
	DefaultAddresses = "http://127.0.0.1:9200"
	DefaultIndexName = "query_validation_outcomes"
	DefaultTimeout   = 10 * time.Second
)

// Error codes for configuration validation
const (
	ErrCodeEmptyAddresses = "EMPTY_ADDRESSES"
	ErrCodeEmptyIndexName = "EMPTY_INDEX_NAME"
	ErrCodeInvalidFormat  = "INVALID_FORMAT"
)

// ConfigError represents a configuration validation error
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Config represents Elasticsearch configuration settings.
type Config struct {
	// Enabled turns on indexing of every outcome
	Enabled bool `mapstructure:"enabled"`
	// Addresses is a list of Elasticsearch node addresses
	Addresses []string `mapstructure:"addresses"`
	// APIKey is the base64 encoded API key for authentication
	APIKey string `mapstructure:"api_key"`
	// Username is the username for basic authentication
	Username string `mapstructure:"username"`
	// Password is the password for basic authentication
	Password string `mapstructure:"password"`
	// IndexName is the index outcomes are written to
	IndexName string `mapstructure:"index_name"`
	// Timeout bounds each index request
	Timeout time.Duration `mapstructure:"timeout"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Addresses: []string{DefaultAddresses},
		IndexName: DefaultIndexName,
		Timeout:   DefaultTimeout,
	}
}

// Validate validates the configuration when indexing is enabled.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Addresses) == 0 {
		return &ConfigError{Code: ErrCodeEmptyAddresses, Message: "at least one address is required"}
	}
	for _, addr := range c.Addresses {
		if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
			return &ConfigError{Code: ErrCodeInvalidFormat, Message: fmt.Sprintf("invalid address: %s", addr)}
		}
	}
	if c.IndexName == "" {
		return &ConfigError{Code: ErrCodeEmptyIndexName, Message: "index name is required"}
	}
	return nil
}

// ParseAddressesFromString splits a comma-separated address list.
func ParseAddressesFromString(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	addresses := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			addresses = append(addresses, trimmed)
		}
	}
	return addresses
}
