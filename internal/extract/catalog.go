package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

// Catalog fallbacks for missing names.
const (
	untitledSection = "Untitled Section"
	unnamedQuery    = "Unnamed Query"
)

// catalogDocument mirrors the console configuration JSON.
type catalogDocument struct {
	SavedQueries []catalogSection `json:"savedQueries"`
}

type catalogSection struct {
	Title   *string        `json:"title"`
	Queries []catalogQuery `json:"queries"`
}

type catalogQuery struct {
	Name  *string `json:"name"`
	Value string  `json:"value"`
}

// CatalogExtractor reads the saved queries of the demo console catalog.
type CatalogExtractor struct {
	url       string
	userAgent string
	client    *http.Client
	logger    logger.Interface
}

// NewCatalogExtractor creates a CatalogExtractor fetching url with client.
func NewCatalogExtractor(url, userAgent string, client *http.Client, log logger.Interface) *CatalogExtractor {
	return &CatalogExtractor{
		url:       url,
		userAgent: userAgent,
		client:    client,
		logger:    log.WithComponent("extract.catalog"),
	}
}

// Name implements Extractor.
func (e *CatalogExtractor) Name() string { return SourceCatalog }

// Extract fetches the whole catalog before yielding, so a failure degrades
// the source to an empty sequence.
func (e *CatalogExtractor) Extract(ctx context.Context) iter.Seq[domain.QueryRecord] {
	doc, err := e.fetch(ctx)
	if err != nil {
		e.logger.Warn("Could not fetch demo catalog", "url", e.url, "error", err)
		return emptySeq()
	}

	return func(yield func(domain.QueryRecord) bool) {
		for _, section := range doc.SavedQueries {
			sectionTitle := valueOr(section.Title, untitledSection)
			for _, q := range section.Queries {
				if q.Value == "" {
					continue
				}
				sql := decodeCatalogSQL(q.Value)
				if sql == "" {
					continue
				}
				rec := domain.QueryRecord{
					Origin: e.url,
					Title:  sectionTitle + " – " + valueOr(q.Name, unnamedQuery),
					SQL:    sql,
				}
				if !yield(rec) {
					return
				}
			}
		}
	}
}

func (e *CatalogExtractor) fetch(ctx context.Context) (*catalogDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var doc catalogDocument
	if decodeErr := json.NewDecoder(resp.Body).Decode(&doc); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", decodeErr)
	}
	return &doc, nil
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
