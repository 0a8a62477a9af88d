package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/logger"
	"github.com/jonesrussell/queryvalidator/internal/runner"
)

// DefaultIndexTimeout bounds a single index request when none is configured.
const DefaultIndexTimeout = 10 * time.Second

// OutcomeDocument is the indexed form of one outcome.
type OutcomeDocument struct {
	RunID         string    `json:"run_id"`
	Position      int       `json:"position"`
	Origin        string    `json:"origin"`
	Title         string    `json:"title"`
	SQL           string    `json:"sql"`
	OK            bool      `json:"ok"`
	Error         *string   `json:"error,omitempty"`
	ColdLatencyMs *float64  `json:"cold_latency_ms,omitempty"`
	HotLatencyMs  *float64  `json:"hot_latency_ms,omitempty"`
	Bucket        string    `json:"bucket"`
	Timestamp     time.Time `json:"timestamp"`
}

// DocumentID returns the ID of the document at position within runID.
func DocumentID(runID string, position int) string {
	return runID + "-" + strconv.Itoa(position)
}

var _ runner.Observer = (*OutcomeIndexer)(nil)

// OutcomeIndexer is a runner observer that indexes each outcome as it is
// observed. Indexing failures are logged and never stop the run.
type OutcomeIndexer struct {
	runner.BaseObserver

	ctx        context.Context
	client     *es.Client
	index      string
	timeout    time.Duration
	thresholds domain.Thresholds
	logger     logger.Interface
	now        func() time.Time

	runID string
}

// NewOutcomeIndexer creates an OutcomeIndexer writing to index.
func NewOutcomeIndexer(
	ctx context.Context,
	client *es.Client,
	index string,
	timeout time.Duration,
	thresholds domain.Thresholds,
	log logger.Interface,
) *OutcomeIndexer {
	if timeout <= 0 {
		timeout = DefaultIndexTimeout
	}
	return &OutcomeIndexer{
		ctx:        ctx,
		client:     client,
		index:      index,
		timeout:    timeout,
		thresholds: thresholds,
		logger:     log.WithComponent("storage"),
		now:        time.Now,
	}
}

// EnsureIndex creates the outcome index with its mapping when missing.
func (i *OutcomeIndexer) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.index}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	i.closeResponse(res, "EnsureIndex", "")
	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, err := json.Marshal(outcomeMapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	res, err = i.client.Indices.Create(
		i.index,
		i.client.Indices.Create.WithBody(bytes.NewReader(body)),
		i.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer i.closeResponse(res, "EnsureIndex", "")

	if res.IsError() {
		return fmt.Errorf("error creating index: %s", res.String())
	}

	i.logger.Info("Created outcome index", "index", i.index)
	return nil
}

// OnStart remembers the run ID used for document IDs.
func (i *OutcomeIndexer) OnStart(runID string, _ int) {
	i.runID = runID
}

// OnOutcome indexes one outcome.
func (i *OutcomeIndexer) OnOutcome(position int, o domain.ExecutionOutcome) {
	doc := OutcomeDocument{
		RunID:         i.runID,
		Position:      position,
		Origin:        o.Record.Origin,
		Title:         o.Record.Title,
		SQL:           o.Record.SQL,
		OK:            o.OK,
		Error:         o.Error,
		ColdLatencyMs: o.ColdLatencyMs,
		HotLatencyMs:  o.HotLatencyMs,
		Bucket:        string(i.thresholds.Classify(o)),
		Timestamp:     i.now().UTC(),
	}

	if err := i.IndexDocument(DocumentID(i.runID, position), doc); err != nil {
		i.logger.Error("Failed to index outcome",
			"index", i.index,
			"doc_id", DocumentID(i.runID, position),
			"error", err,
		)
	}
}

// IndexDocument writes doc under id.
func (i *OutcomeIndexer) IndexDocument(id string, doc OutcomeDocument) error {
	ctx, cancel := context.WithTimeout(i.ctx, i.timeout)
	defer cancel()

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document for indexing: %w", err)
	}

	res, err := i.client.Index(
		i.index,
		bytes.NewReader(body),
		i.client.Index.WithContext(ctx),
		i.client.Index.WithDocumentID(id),
	)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer i.closeResponse(res, "IndexDocument", id)

	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// closeResponse closes an Elasticsearch response body and logs any error.
func (i *OutcomeIndexer) closeResponse(res *esapi.Response, operation, docID string) {
	if closeErr := res.Body.Close(); closeErr != nil {
		fields := []any{"error", closeErr, "operation", operation, "index", i.index}
		if docID != "" {
			fields = append(fields, "doc_id", docID)
		}
		i.logger.Error("Failed to close response body", fields...)
	}
}
