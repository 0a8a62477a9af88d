// Package output provides configuration for the generated artifacts.
package output

import "errors"

// Default artifact paths
const (
	DefaultAllQueriesPath    = "all_queries.sql"
	DefaultFailedQueriesPath = "failed_queries.sql"
	DefaultReportPath        = "query_validation_report.txt"
)

// Config holds the artifact file locations.
type Config struct {
	AllQueries    string `mapstructure:"all_queries"`
	FailedQueries string `mapstructure:"failed_queries"`
	Report        string `mapstructure:"report"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		AllQueries:    DefaultAllQueriesPath,
		FailedQueries: DefaultFailedQueriesPath,
		Report:        DefaultReportPath,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.AllQueries == "" || c.FailedQueries == "" || c.Report == "" {
		return errors.New("all artifact paths must be specified")
	}
	if c.AllQueries == c.FailedQueries || c.AllQueries == c.Report || c.FailedQueries == c.Report {
		return errors.New("artifact paths must be distinct")
	}
	return nil
}
