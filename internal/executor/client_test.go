package executor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/queryvalidator/internal/common/transport"
	"github.com/jonesrussell/queryvalidator/internal/executor"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

func newClient(baseURL string, read time.Duration) *executor.Client {
	return executor.New(executor.Config{
		BaseURL:  baseURL,
		Timeouts: transport.Timeouts{Connect: time.Second, Read: read},
	}, logger.NewNoOp())
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestClient_Execute_RequestShape(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotTimings string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotTimings = r.URL.Query().Get("timings")
		_, _ = w.Write([]byte(`{"timings":{"execute":1500000}}`))
	}))
	defer srv.Close()

	res := newClient(srv.URL+"/", time.Second).Execute(context.Background(), "SELECT * FROM t WHERE a = 'x&y';")

	assert.Equal(t, "/exec", gotPath)
	assert.Equal(t, "SELECT * FROM t WHERE a = 'x&y';", gotQuery)
	assert.Equal(t, "true", gotTimings)
	assert.True(t, res.OK)
	require.NotNil(t, res.LatencyNs)
	assert.Equal(t, int64(1_500_000), *res.LatencyNs)
}

func TestClient_Execute_Interpretation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantOK    bool
		wantError string
		wantNs    *int64
	}{
		{
			name:      "non 2xx with json error",
			handler:   respond(http.StatusBadRequest, `{"query":"SELECT x FROM t","error":"unknown column","position":7}`),
			wantOK:    false,
			wantError: "unknown column",
		},
		{
			name:      "non 2xx with plain body",
			handler:   respond(http.StatusInternalServerError, "  internal failure \n"),
			wantOK:    false,
			wantError: "HTTP 500 Internal Server Error: internal failure",
		},
		{
			name:      "non 2xx without body",
			handler:   respond(http.StatusServiceUnavailable, ""),
			wantOK:    false,
			wantError: "HTTP 503 Service Unavailable: No body",
		},
		{
			name:      "non 2xx json without error field",
			handler:   respond(http.StatusNotFound, `{"message":"nope"}`),
			wantOK:    false,
			wantError: `HTTP 404 Not Found: {"message":"nope"}`,
		},
		{
			name:    "2xx empty body",
			handler: respond(http.StatusOK, ""),
			wantOK:  true,
		},
		{
			name:      "2xx with json error",
			handler:   respond(http.StatusOK, `{"error":"table does not exist [table=foo]"}`),
			wantOK:    false,
			wantError: "table does not exist [table=foo]",
		},
		{
			name:      "non string error is kept as json",
			handler:   respond(http.StatusOK, `{"error":{"code":42}}`),
			wantOK:    false,
			wantError: `{"code":42}`,
		},
		{
			name:      "2xx error with timings array",
			handler:   respond(http.StatusOK, `{"error":"table does not exist","timings":[]}`),
			wantOK:    false,
			wantError: "table does not exist",
		},
		{
			name:      "2xx error with non numeric execute",
			handler:   respond(http.StatusOK, `{"error":"bad","timings":{"execute":"n/a"}}`),
			wantOK:    false,
			wantError: "bad",
		},
		{
			name:    "2xx null error",
			handler: respond(http.StatusOK, `{"error":null}`),
			wantOK:  false,
		},
		{
			name:    "2xx malformed timings means no latency",
			handler: respond(http.StatusOK, `{"dataset":[[1]],"timings":{"execute":"n/a"}}`),
			wantOK:  true,
		},
		{
			name:    "2xx with timings",
			handler: respond(http.StatusOK, `{"query":"SELECT 1;","columns":[],"dataset":[[1]],"timings":{"compiler":100,"execute":3200000000,"count":5}}`),
			wantOK:  true,
			wantNs:  int64Ptr(3_200_000_000),
		},
		{
			name:    "2xx without timings",
			handler: respond(http.StatusOK, `{"query":"SELECT 1;","dataset":[[1]]}`),
			wantOK:  true,
		},
		{
			name:    "2xx non json",
			handler: respond(http.StatusOK, "OK"),
			wantOK:  true,
		},
		{
			name:    "2xx other success code",
			handler: respond(http.StatusAccepted, `{"timings":{"execute":10}}`),
			wantOK:  true,
			wantNs:  int64Ptr(10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			res := newClient(srv.URL, time.Second).Execute(context.Background(), "SELECT 1;")

			assert.Equal(t, tt.wantOK, res.OK)
			assert.Equal(t, tt.wantError, res.Error)
			assert.Equal(t, tt.wantNs, res.LatencyNs)
		})
	}
}

func TestClient_Execute_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	res := newClient(srv.URL, 100*time.Millisecond).Execute(context.Background(), "SELECT sleep(1);")

	assert.False(t, res.OK)
	assert.Equal(t, "Timeout after 0.1s", res.Error)
	assert.Nil(t, res.LatencyNs)
}

func TestClient_Execute_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	res := newClient(baseURL, time.Second).Execute(context.Background(), "SELECT 1;")

	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
	assert.NotContains(t, res.Error, "Timeout after")
}

func TestTimeoutMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Timeout after 60s", executor.TimeoutMessage(60*time.Second))
	assert.Equal(t, "Timeout after 1.5s", executor.TimeoutMessage(1500*time.Millisecond))
}

func int64Ptr(v int64) *int64 { return &v }
