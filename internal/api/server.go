// Package api implements the HTTP status API of the serve command.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/queryvalidator/internal/api/middleware"
	"github.com/jonesrussell/queryvalidator/internal/config/server"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

// readHeaderTimeout is the timeout for reading request headers.
const readHeaderTimeout = 10 * time.Second

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(log logger.Interface, handler *RunsHandler, apiKey string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))
	router.Use(middleware.SecurityHeaders())

	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/runs", handler.List)
	v1.GET("/runs/latest", handler.Latest)
	v1.GET("/metrics", handler.Metrics)
	v1.POST("/runs", middleware.APIKey(apiKey, log), handler.Trigger)

	return router
}

// NewHTTPServer wraps router in an http.Server configured from cfg.
func NewHTTPServer(cfg *server.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
