package store

import (
	"database/sql"
	"time"
)

// BoxScore is one persisted box-score row.
type BoxScore struct {
	BoxScoreID int64     `json:"box_score_id" db:"box_score_id"`
	GameDate   string    `json:"game_date" db:"game_date"`
	PlayerName string    `json:"player_name" db:"player_name"`
	Team       string    `json:"team" db:"team"`
	Opponent   string    `json:"opponent" db:"opponent"`
	Points     int       `json:"points" db:"points"`
	Rebounds   int       `json:"rebounds" db:"rebounds"`
	Assists    int       `json:"assists" db:"assists"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// ScrapeRun is the persisted record of one pipeline run.
type ScrapeRun struct {
	RunID         string         `json:"run_id" db:"run_id"`
	Seasons       string         `json:"seasons" db:"seasons"`
	SeasonType    string         `json:"season_type" db:"season_type"`
	Status        string         `json:"status" db:"status"`
	StatusMessage sql.NullString `json:"status_message,omitempty" db:"status_message"`
	RecordsTotal  int            `json:"records_total" db:"records_total"`
	LastError     sql.NullString `json:"last_error,omitempty" db:"last_error"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
	StartedAt     sql.NullTime   `json:"started_at,omitempty" db:"started_at"`
	CompletedAt   sql.NullTime   `json:"completed_at,omitempty" db:"completed_at"`
}
