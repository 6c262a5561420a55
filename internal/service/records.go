package service

import (
	"context"
	"fmt"

	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

const defaultLimit = 20

// RecordService answers read queries over persisted box scores.
type RecordService struct {
	repo *repository.BoxScoreRepository
}

// NewRecordService creates a record service.
func NewRecordService(db *store.Database) *RecordService {
	return &RecordService{repo: repository.NewBoxScoreRepository(db)}
}

// GetPlayerBoxScores returns a player's recent box scores.
func (s *RecordService) GetPlayerBoxScores(ctx context.Context, playerName string, limit int) ([]*store.BoxScore, error) {
	if playerName == "" {
		return nil, fmt.Errorf("player name is required")
	}
	if limit <= 0 || limit > 100 {
		limit = defaultLimit
	}
	return s.repo.GetByPlayer(ctx, playerName, limit)
}

// GetBoxScoresByDate returns all box scores for a game date.
func (s *RecordService) GetBoxScoresByDate(ctx context.Context, gameDate string) ([]*store.BoxScore, error) {
	if gameDate == "" {
		return nil, fmt.Errorf("game date is required")
	}
	return s.repo.GetByDate(ctx, gameDate)
}

// TotalRecords returns the number of stored box-score rows.
func (s *RecordService) TotalRecords(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
