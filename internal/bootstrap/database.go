package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/queryvalidator/internal/config/database"
	"github.com/jonesrussell/queryvalidator/internal/history"
	"github.com/jonesrussell/queryvalidator/internal/logger"
)

// HistoryComponents holds the history connection and repository.
type HistoryComponents struct {
	DB   *sqlx.DB
	Repo *history.RunRepository
}

// Close releases the database connection.
func (h *HistoryComponents) Close() error {
	if h == nil || h.DB == nil {
		return nil
	}
	return h.DB.Close()
}

// SetupHistory connects to PostgreSQL and prepares the run history schema.
// It returns nil when history is disabled or unreachable; the run proceeds
// without it.
func SetupHistory(ctx context.Context, cfg *database.Config, log logger.Interface) *HistoryComponents {
	if !cfg.Enabled {
		return nil
	}

	components, err := connectHistory(ctx, cfg)
	if err != nil {
		log.Warn("Run history disabled", "error", err)
		return nil
	}

	log.Info("Run history enabled", "host", cfg.Host, "dbname", cfg.DBName)
	return components
}

func connectHistory(ctx context.Context, cfg *database.Config) (*HistoryComponents, error) {
	db, err := history.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := history.NewRunRepository(db)
	if schemaErr := repo.EnsureSchema(ctx); schemaErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", schemaErr)
	}

	return &HistoryComponents{DB: db, Repo: repo}, nil
}
