package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonesrussell/queryvalidator/internal/api"
	"github.com/jonesrussell/queryvalidator/internal/domain"
	"github.com/jonesrussell/queryvalidator/internal/metrics"
	"github.com/jonesrussell/queryvalidator/internal/runner"
	"github.com/jonesrussell/queryvalidator/internal/scheduler"
)

// ServerComponents holds the HTTP server and error channel.
type ServerComponents struct {
	Server    *http.Server
	ErrorChan <-chan error
}

// SetupScheduler creates the cron scheduler driving pipeline runs. Every
// run also reports to observers.
func SetupScheduler(deps *CommandDeps, pipeline *Pipeline, observers ...runner.Observer) (*scheduler.Scheduler, error) {
	run := func(ctx context.Context) (domain.RunSummary, error) {
		return pipeline.Run(ctx, observers...)
	}

	sched, err := scheduler.New(deps.Config.Schedule, run, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return sched, nil
}

// SetupHTTPServer creates and starts the status API server.
// Returns the server and an error channel for server errors.
func SetupHTTPServer(
	deps *CommandDeps,
	runs api.RunController,
	pipeline *Pipeline,
	runMetrics *metrics.Metrics,
) *ServerComponents {
	var lister api.RunLister
	if repo := pipeline.History(); repo != nil {
		lister = repo
	}

	handler := api.NewRunsHandler(runs, lister, deps.Logger.WithComponent("api")).WithMetrics(runMetrics)
	router := api.SetupRouter(deps.Logger, handler, deps.Config.Server.APIKey)
	server := api.NewHTTPServer(deps.Config.Server, router)

	deps.Logger.Info("Starting HTTP server", "addr", server.Addr)

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	return &ServerComponents{
		Server:    server,
		ErrorChan: errChan,
	}
}
