// Package schedule provides configuration for scheduled validation runs.
package schedule

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
)

// DefaultCron runs the validation once a day.
const DefaultCron = "@daily"

// Config holds the schedule used by the serve command.
type Config struct {
	// Cron is a standard 5-field cron expression or descriptor (@daily, @every 1h)
	Cron string `mapstructure:"cron"`
	// RunOnStart triggers a run immediately when the scheduler starts
	RunOnStart bool `mapstructure:"run_on_start"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{Cron: DefaultCron}
}

// Parser is the cron parser shared by validation and the scheduler.
func Parser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Cron == "" {
		return errors.New("schedule cron expression must be specified")
	}
	if _, err := Parser().Parse(c.Cron); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", c.Cron, err)
	}
	return nil
}
