package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtside/internal/store"
)

// BoxScoreRepository handles box-score data access.
type BoxScoreRepository struct {
	db *store.Database
}

// NewBoxScoreRepository creates a new box-score repository.
func NewBoxScoreRepository(db *store.Database) *BoxScoreRepository {
	return &BoxScoreRepository{db: db}
}

// UpsertBatch writes rows in one transaction, updating stats on conflict so
// re-scraping a season refreshes rather than duplicates. Returns the number
// of rows written.
func (r *BoxScoreRepository) UpsertBatch(ctx context.Context, rows []store.BoxScore) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin upsert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO box_scores (game_date, player_name, team, opponent, points, rebounds, assists)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (game_date, player_name, team) DO UPDATE SET
			opponent = EXCLUDED.opponent,
			points = EXCLUDED.points,
			rebounds = EXCLUDED.rebounds,
			assists = EXCLUDED.assists,
			updated_at = NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.GameDate, row.PlayerName, row.Team, row.Opponent,
			row.Points, row.Rebounds, row.Assists,
		); err != nil {
			return written, fmt.Errorf("upsert box score for %s on %s: %w", row.PlayerName, row.GameDate, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert transaction: %w", err)
	}

	return written, nil
}

// GetByPlayer returns a player's box scores, most recent first.
func (r *BoxScoreRepository) GetByPlayer(ctx context.Context, playerName string, limit int) ([]*store.BoxScore, error) {
	query := `
		SELECT box_score_id, game_date, player_name, team, opponent, points, rebounds, assists, created_at, updated_at
		FROM box_scores
		WHERE player_name = $1
		ORDER BY game_date DESC
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, playerName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying player box scores: %w", err)
	}
	defer rows.Close()

	return r.scanBoxScores(rows)
}

// GetByDate returns all box scores for a game date.
func (r *BoxScoreRepository) GetByDate(ctx context.Context, gameDate string) ([]*store.BoxScore, error) {
	query := `
		SELECT box_score_id, game_date, player_name, team, opponent, points, rebounds, assists, created_at, updated_at
		FROM box_scores
		WHERE game_date = $1
		ORDER BY points DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameDate)
	if err != nil {
		return nil, fmt.Errorf("querying box scores by date: %w", err)
	}
	defer rows.Close()

	return r.scanBoxScores(rows)
}

// Count returns the total number of stored box-score rows.
func (r *BoxScoreRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM box_scores").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting box scores: %w", err)
	}
	return count, nil
}

func (r *BoxScoreRepository) scanBoxScores(rows *sql.Rows) ([]*store.BoxScore, error) {
	var results []*store.BoxScore
	for rows.Next() {
		bs := &store.BoxScore{}
		if err := rows.Scan(
			&bs.BoxScoreID, &bs.GameDate, &bs.PlayerName, &bs.Team, &bs.Opponent,
			&bs.Points, &bs.Rebounds, &bs.Assists, &bs.CreatedAt, &bs.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning box score row: %w", err)
		}
		results = append(results, bs)
	}
	return results, rows.Err()
}
