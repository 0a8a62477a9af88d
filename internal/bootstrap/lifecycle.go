package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/queryvalidator/internal/logger"
	"github.com/jonesrussell/queryvalidator/internal/metrics"
	"github.com/jonesrussell/queryvalidator/internal/scheduler"
)

const (
	signalChannelBufferSize = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Serve runs the scheduler and status API until interrupted.
// The function blocks until the server is interrupted or encounters an error.
func Serve(ctx context.Context, deps *CommandDeps) error {
	// Phase 2 & 3: sinks and pipeline
	pipeline := SetupPipeline(ctx, deps)
	defer func() {
		if err := pipeline.Close(); err != nil {
			deps.Logger.Error("Failed to close run history", "error", err)
		}
	}()

	// Phase 4: scheduler and server
	runMetrics := metrics.NewMetrics(pipeline.Thresholds())
	sched, err := SetupScheduler(deps, pipeline, runMetrics)
	if err != nil {
		return err
	}
	if startErr := sched.Start(ctx); startErr != nil {
		return fmt.Errorf("start scheduler: %w", startErr)
	}

	serverComponents := SetupHTTPServer(deps, sched, pipeline, runMetrics)

	// Phase 5: run until interrupt or error
	return RunUntilInterrupt(ctx, deps.Logger, serverComponents, sched)
}

// RunUntilInterrupt runs the server until interrupted by signal, context
// cancellation or server error.
func RunUntilInterrupt(
	ctx context.Context,
	log logger.Interface,
	server *ServerComponents,
	sched *scheduler.Scheduler,
) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case serverErr, ok := <-server.ErrorChan:
		sched.Stop()
		if !ok {
			return nil
		}
		log.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		log.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		log.Info("Context canceled, shutting down")
	}

	return Shutdown(log, server, sched)
}

// Shutdown stops the scheduler, waiting for an active run, then the HTTP server.
func Shutdown(log logger.Interface, server *ServerComponents, sched *scheduler.Scheduler) error {
	if sched != nil {
		sched.Stop()
	}

	log.Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := server.Server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("Server stopped successfully")
	return nil
}
