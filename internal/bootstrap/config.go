// Package bootstrap assembles the validation pipeline and the serve command's
// long-running services from configuration.
//
// The bootstrap process follows these phases:
//   - Phase 1: Config & Logger - Decode configuration and create logger
//   - Phase 2: Sinks - Connect the optional run history and outcome index
//   - Phase 3: Pipeline - Create extractors, executor and runner observers
//   - Phase 4: Server - Create scheduler and HTTP server (serve only)
//   - Phase 5: Run - Wait for interrupt signal or error
package bootstrap

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/queryvalidator/internal/config"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

var (
	// errLoggerRequired is returned when CommandDeps.Logger is nil.
	errLoggerRequired = errors.New("logger is required")
	// errConfigRequired is returned when CommandDeps.Config is nil.
	errConfigRequired = errors.New("config is required")
)

// CommandDeps holds the dependencies shared by every command.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// NewCommandDeps decodes the Viper state and creates the logger.
func NewCommandDeps(v *viper.Viper) (*CommandDeps, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	deps := &CommandDeps{
		Logger: log.With("service", cfg.App.Name),
		Config: cfg,
	}
	if validateErr := deps.Validate(); validateErr != nil {
		return nil, fmt.Errorf("validate deps: %w", validateErr)
	}
	return deps, nil
}

// CreateLogger creates a logger from the logger section, raising the level
// to debug when app.debug is set.
func CreateLogger(cfg *config.Config) (logger.Interface, error) {
	logCfg := *cfg.Logger
	if cfg.App.Debug {
		logCfg.Level = logger.DebugLevel
	}
	return logger.New(&logCfg)
}

// Validate ensures all required dependencies are present.
func (d *CommandDeps) Validate() error {
	if d.Logger == nil {
		return errLoggerRequired
	}
	if d.Config == nil {
		return errConfigRequired
	}
	return nil
}
