// Package sources provides configuration for the query extraction sources.
package sources

import (
	"errors"
	"fmt"
	"net/url"
)

// Default configuration values
const (
	DefaultPath                = "."
	DefaultExcludeSuffix       = "static/reference-full.md"
	DefaultDialectTag          = "questdb-sql"
	DefaultMarker              = "demo"
	DefaultCatalogURL          = "https://demo.questdb.io/assets/console-configuration.json"
	DefaultDashboardLinkMarker = "demo.questdb.io?query="
	DefaultUserAgent           = "queryvalidator/1.0"
)

// DefaultExtensions are the markdown-family file extensions scanned locally.
var DefaultExtensions = []string{".md", ".mdx"}

// DefaultDashboardURLs are the public dashboards whose panel links embed queries.
var DefaultDashboardURLs = []string{
	"https://questdb.com/dashboards/fx-orderbook/",
	"https://questdb.com/dashboards/crypto/",
}

// Config holds per-source settings and the enable switches.
type Config struct {
	// Local enables the markdown file tree scanner
	Local bool `mapstructure:"local"`
	// Catalog enables the remote demo console catalog
	Catalog bool `mapstructure:"catalog"`
	// Dashboards enables scraping of the dashboard pages
	Dashboards bool `mapstructure:"dashboards"`

	// Path is the root folder searched for markdown files
	Path string `mapstructure:"path"`
	// Extensions are the file extensions considered markdown
	Extensions []string `mapstructure:"extensions"`
	// ExcludeSuffix skips the aggregated reference file
	ExcludeSuffix string `mapstructure:"exclude_suffix"`
	// DialectTag is the fenced code block language tag
	DialectTag string `mapstructure:"dialect_tag"`
	// Marker is the token that flags a block as runnable
	Marker string `mapstructure:"marker"`

	// CatalogURL is the console configuration JSON document
	CatalogURL string `mapstructure:"catalog_url"`
	// DashboardURLs are the HTML pages to scrape
	DashboardURLs []string `mapstructure:"dashboard_urls"`
	// DashboardLinkMarker selects anchors that link to the query endpoint
	DashboardLinkMarker string `mapstructure:"dashboard_link_marker"`
	// UserAgent is sent with remote source requests
	UserAgent string `mapstructure:"user_agent"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Local:               true,
		Catalog:             true,
		Dashboards:          true,
		Path:                DefaultPath,
		Extensions:          append([]string(nil), DefaultExtensions...),
		ExcludeSuffix:       DefaultExcludeSuffix,
		DialectTag:          DefaultDialectTag,
		Marker:              DefaultMarker,
		CatalogURL:          DefaultCatalogURL,
		DashboardURLs:       append([]string(nil), DefaultDashboardURLs...),
		DashboardLinkMarker: DefaultDashboardLinkMarker,
		UserAgent:           DefaultUserAgent,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Local {
		if c.Path == "" {
			return errors.New("local source enabled but no path given")
		}
		if c.DialectTag == "" {
			return errors.New("dialect tag must be specified")
		}
		if len(c.Extensions) == 0 {
			return errors.New("at least one markdown extension must be specified")
		}
	}
	if c.Catalog {
		if err := validateURL("catalog_url", c.CatalogURL); err != nil {
			return err
		}
	}
	if c.Dashboards {
		for _, u := range c.DashboardURLs {
			if err := validateURL("dashboard_urls", u); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateURL(field, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%s: invalid url %q", field, raw)
	}
	return nil
}
