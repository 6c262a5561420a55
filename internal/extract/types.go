package extract

import (
	"fmt"
	"time"
)

// Config describes one scrape run: where to go and which season contexts to walk.
type Config struct {
	TargetURL  string
	Seasons    []string
	SeasonType string
}

// Validate enforces the run invariants before any browser work starts.
func (c Config) Validate() error {
	if c.TargetURL == "" {
		return fmt.Errorf("target URL is required")
	}
	if len(c.Seasons) == 0 {
		return fmt.Errorf("at least one season is required")
	}
	if c.SeasonType == "" {
		return fmt.Errorf("season type is required")
	}
	return nil
}

// BoxScoreRecord is one fully parsed box-score row. Records are never
// partially populated: a row either parses completely or is dropped.
type BoxScoreRecord struct {
	GameDate   string `json:"game_date"`
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	Opponent   string `json:"opponent"`
	Points     int    `json:"points"`
	Rebounds   int    `json:"rebounds"`
	Assists    int    `json:"assists"`
}

// pageState is the transient snapshot the engine works from between a page
// fetch and the advance decision. It is never persisted.
type pageState struct {
	markup     string
	pageIndex  int
	totalPages int
}

// Timing holds the settle-wait knobs shared by the navigator and the engine.
type Timing struct {
	// SettleTimeout bounds how long a settle wait may poll before giving up
	// and proceeding with whatever the page currently shows.
	SettleTimeout time.Duration

	// PollInterval is the delay between readiness probes during a settle wait.
	PollInterval time.Duration
}

// DefaultTiming mirrors the reload pauses the target site needs in practice.
func DefaultTiming() Timing {
	return Timing{
		SettleTimeout: 3 * time.Second,
		PollInterval:  250 * time.Millisecond,
	}
}

func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.SettleTimeout <= 0 {
		t.SettleTimeout = d.SettleTimeout
	}
	if t.PollInterval <= 0 {
		t.PollInterval = d.PollInterval
	}
	return t
}
