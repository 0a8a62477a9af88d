// Package app provides application-level configuration.
package app

import (
	"errors"
	"fmt"
)

// Default configuration values
const (
	DefaultName        = "queryvalidator"
	DefaultVersion     = "1.0.0"
	DefaultEnvironment = "production"
)

// Config represents application-specific configuration settings.
type Config struct {
	// Name is the name of the application
	Name string `mapstructure:"name"`
	// Version is the version of the application
	Version string `mapstructure:"version"`
	// Environment is the application environment (development, staging, production)
	Environment string `mapstructure:"environment"`
	// Debug indicates whether debug mode is enabled
	Debug bool `mapstructure:"debug"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return errors.New("environment must be specified")
	}

	switch c.Environment {
	case "development", "staging", "production", "test":
		// Valid environment
	default:
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.Name == "" {
		return errors.New("application name must be specified")
	}

	return nil
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Name:        DefaultName,
		Version:     DefaultVersion,
		Environment: DefaultEnvironment,
	}
}
