package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/fortuna/courtside/internal/store"
)

// RunRepository persists scrape-run history.
type RunRepository struct {
	db *store.Database
}

// NewRunRepository creates a run repository.
func NewRunRepository(db *store.Database) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new queued run.
func (r *RunRepository) Create(ctx context.Context, runID string, spec RunSpec) error {
	query := `
		INSERT INTO scrape_runs (run_id, seasons, season_type, status)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.DB().ExecContext(ctx, query, runID, strings.Join(spec.Seasons, ","), spec.SeasonType, string(RunStatusQueued))
	if err != nil {
		return fmt.Errorf("insert scrape run: %w", err)
	}
	return nil
}

// MarkRunning transitions the run to running and stamps its start time.
func (r *RunRepository) MarkRunning(ctx context.Context, runID string) error {
	query := `
		UPDATE scrape_runs
		SET status = $2, started_at = NOW(), updated_at = NOW()
		WHERE run_id = $1
	`
	_, err := r.db.DB().ExecContext(ctx, query, runID, string(RunStatusRunning))
	if err != nil {
		return fmt.Errorf("mark run running: %w", err)
	}
	return nil
}

// Finish records the terminal state of a run from its summary.
func (r *RunRepository) Finish(ctx context.Context, summary Summary) error {
	query := `
		UPDATE scrape_runs
		SET status = $2, records_total = $3, last_error = NULLIF($4, ''),
			status_message = $5, completed_at = NOW(), updated_at = NOW()
		WHERE run_id = $1
	`
	message := fmt.Sprintf("extracted %d, loaded %d", summary.RecordsExtracted, summary.RecordsLoaded)
	_, err := r.db.DB().ExecContext(ctx, query, summary.RunID, string(summary.Status), summary.RecordsLoaded, summary.Error, message)
	if err != nil {
		return fmt.Errorf("finish scrape run: %w", err)
	}
	return nil
}

// GetRecent returns the most recent runs, newest first.
func (r *RunRepository) GetRecent(ctx context.Context, limit int) ([]*store.ScrapeRun, error) {
	query := `
		SELECT run_id, seasons, season_type, status, status_message, records_total,
			last_error, created_at, updated_at, started_at, completed_at
		FROM scrape_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent runs: %w", err)
	}
	defer rows.Close()

	var runs []*store.ScrapeRun
	for rows.Next() {
		run := &store.ScrapeRun{}
		if err := rows.Scan(
			&run.RunID, &run.Seasons, &run.SeasonType, &run.Status, &run.StatusMessage,
			&run.RecordsTotal, &run.LastError, &run.CreatedAt, &run.UpdatedAt,
			&run.StartedAt, &run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
