package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/queryvalidator/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS validation_runs (
	id          TEXT PRIMARY KEY,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	total       INTEGER NOT NULL,
	succeeded   INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	slow        INTEGER NOT NULL,
	very_slow   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS validation_outcomes (
	run_id          TEXT NOT NULL REFERENCES validation_runs(id) ON DELETE CASCADE,
	position        INTEGER NOT NULL,
	origin          TEXT NOT NULL,
	title           TEXT NOT NULL,
	sql             TEXT NOT NULL,
	ok              BOOLEAN NOT NULL,
	error           TEXT,
	cold_latency_ms DOUBLE PRECISION,
	hot_latency_ms  DOUBLE PRECISION,
	bucket          TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_validation_runs_started_at ON validation_runs (started_at DESC);
`

// Run is a persisted run header.
type Run struct {
	ID         string    `db:"id"          json:"id"`
	StartedAt  time.Time `db:"started_at"  json:"started_at"`
	FinishedAt time.Time `db:"finished_at" json:"finished_at"`
	Total      int       `db:"total"       json:"total"`
	Succeeded  int       `db:"succeeded"   json:"succeeded"`
	Failed     int       `db:"failed"      json:"failed"`
	Slow       int       `db:"slow"        json:"slow"`
	VerySlow   int       `db:"very_slow"   json:"very_slow"`
}

// Outcome is one measured query of a run with its 1-based position.
type Outcome struct {
	Position int
	Outcome  domain.ExecutionOutcome
	Bucket   domain.Bucket
}

// RunRepository handles database operations for validation runs.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// EnsureSchema creates the history tables when missing.
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create history schema: %w", err)
	}
	return nil
}

// SaveRun stores the run header and its outcomes in one transaction.
func (r *RunRepository) SaveRun(ctx context.Context, summary domain.RunSummary, outcomes []Outcome) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO validation_runs (id, started_at, finished_at, total, succeeded, failed, slow, very_slow)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		summary.RunID,
		summary.StartedAt,
		summary.FinishedAt,
		summary.Total,
		summary.Succeeded,
		summary.Failed,
		len(summary.SlowOutcomes),
		len(summary.VerySlowOutcomes),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, o := range outcomes {
		rec := o.Outcome.Record
		_, err = tx.ExecContext(ctx, `
			INSERT INTO validation_outcomes
				(run_id, position, origin, title, sql, ok, error, cold_latency_ms, hot_latency_ms, bucket)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`,
			summary.RunID,
			o.Position,
			rec.Origin,
			rec.Title,
			rec.SQL,
			o.Outcome.OK,
			o.Outcome.Error,
			o.Outcome.ColdLatencyMs,
			o.Outcome.HotLatencyMs,
			string(o.Bucket),
		)
		if err != nil {
			return fmt.Errorf("failed to insert outcome %d: %w", o.Position, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("failed to commit run: %w", commitErr)
	}
	return nil
}

// LatestRuns returns up to limit runs, newest first.
func (r *RunRepository) LatestRuns(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := r.db.SelectContext(ctx, &runs, `
		SELECT id, started_at, finished_at, total, succeeded, failed, slow, very_slow
		FROM validation_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
