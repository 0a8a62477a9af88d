package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/queryvalidator/internal/api/middleware"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(key string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.SecurityHeaders())
	router.POST("/protected", middleware.APIKey(key, logger.NewNoOp()), func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})
	return router
}

func TestAPIKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "disabled", configured: "", provided: "", wantStatus: http.StatusAccepted},
		{name: "valid key", configured: "s3cret", provided: "s3cret", wantStatus: http.StatusAccepted},
		{name: "missing key", configured: "s3cret", provided: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", configured: "s3cret", provided: "guess", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/protected", http.NoBody)
			if tt.provided != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.provided)
			}
			w := httptest.NewRecorder()
			newRouter(tt.configured).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	newRouter("").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/protected", http.NoBody))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
