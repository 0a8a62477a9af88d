package extract

import (
	"context"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

// DashboardConfig lists the pages to scrape and how to recognize query links.
type DashboardConfig struct {
	Pages      []string
	LinkMarker string
	UserAgent  string
	// Timeout bounds each page request.
	Timeout time.Duration
}

// DashboardExtractor scrapes dashboard pages for panel links that embed SQL.
type DashboardExtractor struct {
	cfg       DashboardConfig
	transport http.RoundTripper
	logger    logger.Interface
}

// NewDashboardExtractor creates a DashboardExtractor. A nil transport uses the
// collector default.
func NewDashboardExtractor(cfg DashboardConfig, rt http.RoundTripper, log logger.Interface) *DashboardExtractor {
	return &DashboardExtractor{
		cfg:       cfg,
		transport: rt,
		logger:    log.WithComponent("extract.dashboard"),
	}
}

// Name implements Extractor.
func (e *DashboardExtractor) Name() string { return SourceDashboard }

// Extract visits every page in order and yields the panel queries found on it.
func (e *DashboardExtractor) Extract(ctx context.Context) iter.Seq[domain.QueryRecord] {
	return func(yield func(domain.QueryRecord) bool) {
		for _, page := range e.cfg.Pages {
			if ctx.Err() != nil {
				return
			}
			for _, rec := range e.scrape(ctx, page) {
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// scrape returns the records of one page, or nil when the page fails.
func (e *DashboardExtractor) scrape(ctx context.Context, page string) []domain.QueryRecord {
	title := "Dashboard " + pageSlug(page) + " – Panel"

	var records []domain.QueryRecord
	c := e.newCollector(ctx)
	c.OnHTML("html", func(el *colly.HTMLElement) {
		el.DOM.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if !strings.Contains(href, e.cfg.LinkMarker) {
				return
			}
			sql, ok := decodeDashboardHref(href)
			if !ok {
				return
			}
			records = append(records, domain.QueryRecord{Origin: page, Title: title, SQL: sql})
		})
	})

	if err := c.Visit(page); err != nil {
		e.logger.Warn("Could not scrape dashboard", "url", page, "error", err)
		return nil
	}
	c.Wait()

	e.logger.Debug("Scraped dashboard", "url", page, "count", len(records))
	return records
}

func (e *DashboardExtractor) newCollector(ctx context.Context) *colly.Collector {
	opts := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	}
	if e.cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(e.cfg.UserAgent))
	}

	c := colly.NewCollector(opts...)
	if e.transport != nil {
		c.WithTransport(e.transport)
	}
	if e.cfg.Timeout > 0 {
		c.SetRequestTimeout(e.cfg.Timeout)
	}
	return c
}

// pageSlug returns the last path segment of a page URL.
func pageSlug(page string) string {
	trimmed := strings.TrimRight(page, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
