// Package executor runs single SQL statements against the QuestDB REST API.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/queryvalidator/internal/common/transport"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

const execPath = "/exec"

// Result is the interpretation of one /exec response. Error is set when OK is
// false; LatencyNs is set only when the server reported an execute timing.
type Result struct {
	OK        bool
	Error     string
	LatencyNs *int64
}

// Config holds the endpoint and timeout settings of a Client.
type Config struct {
	BaseURL  string
	Timeouts transport.Timeouts
}

// Client executes queries against a QuestDB endpoint.
type Client struct {
	execURL     string
	readTimeout time.Duration
	httpClient  *http.Client
	logger      logger.Interface
}

// New creates a Client with its own HTTP client.
func New(cfg Config, log logger.Interface) *Client {
	return NewWithHTTPClient(cfg, transport.NewHTTPClient(cfg.Timeouts), log)
}

// NewWithHTTPClient creates a Client that uses the given HTTP client.
func NewWithHTTPClient(cfg Config, httpClient *http.Client, log logger.Interface) *Client {
	return &Client{
		execURL:     ExecURL(cfg.BaseURL),
		readTimeout: cfg.Timeouts.Read,
		httpClient:  httpClient,
		logger:      log.WithComponent("executor"),
	}
}

// Execute runs sql once. Every failure is reported in the Result, never as a
// Go error.
func (c *Client) Execute(ctx context.Context, sql string) Result {
	query := url.Values{}
	query.Set("query", sql)
	query.Set("timings", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.execURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return failure(err.Error())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportFailure(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(err)
	}

	c.logger.Debug("Query executed",
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
		"bytes", len(body),
	)
	return interpret(resp.StatusCode, body)
}

// ExecURL returns the /exec endpoint under baseURL.
func ExecURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + execPath
}

func (c *Client) transportFailure(err error) Result {
	if transport.IsTimeout(err) {
		return failure(TimeoutMessage(c.readTimeout))
	}
	return failure(err.Error())
}

// TimeoutMessage is the failure text used when a query exceeds the read timeout.
func TimeoutMessage(read time.Duration) string {
	return "Timeout after " + strconv.FormatFloat(read.Seconds(), 'f', -1, 64) + "s"
}

// execResponse is the subset of the /exec JSON body we inspect. Error is
// non-nil whenever the body carries an error key, even with a null value.
type execResponse struct {
	Error     json.RawMessage
	LatencyNs *int64
}

func interpret(status int, raw []byte) Result {
	text := string(bytes.TrimSpace(raw))

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		if resp, ok := decodeBody(text); ok && resp.Error != nil {
			return failure(errorText(resp.Error))
		}
		if text == "" {
			text = "No body"
		}
		return failure(fmt.Sprintf("HTTP %d %s: %s", status, http.StatusText(status), text))
	}

	if text == "" {
		return Result{OK: true}
	}

	resp, ok := decodeBody(text)
	if !ok {
		return Result{OK: true}
	}
	if resp.Error != nil {
		return failure(errorText(resp.Error))
	}
	return Result{OK: true, LatencyNs: resp.LatencyNs}
}

// decodeBody parses a JSON object body. Anything else is not an /exec document.
// The error key is read before timings so a malformed timings value never
// hides a server error.
func decodeBody(text string) (*execResponse, bool) {
	if !strings.HasPrefix(text, "{") {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, false
	}

	resp := &execResponse{}
	if errRaw, found := fields["error"]; found {
		if errRaw == nil {
			errRaw = json.RawMessage("null")
		}
		resp.Error = errRaw
		return resp, true
	}
	resp.LatencyNs = executeNanos(fields["timings"])
	return resp, true
}

// errorText returns a string error verbatim and any other value as raw JSON.
func errorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// executeNanos reads timings.execute. Any unexpected shape means no latency.
func executeNanos(raw json.RawMessage) *int64 {
	if len(raw) == 0 {
		return nil
	}
	var timings struct {
		Execute *json.Number `json:"execute"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&timings); err != nil || timings.Execute == nil {
		return nil
	}
	if ns, err := timings.Execute.Int64(); err == nil {
		return &ns
	}
	f, err := timings.Execute.Float64()
	if err != nil {
		return nil
	}
	ns := int64(f)
	return &ns
}

func failure(msg string) Result {
	return Result{OK: false, Error: msg}
}
