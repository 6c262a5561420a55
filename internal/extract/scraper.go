package extract

import (
	"context"
)

// Scraper is the top-level extraction entry point: it acquires the browser
// session, runs the pagination engine over every season, and guarantees
// teardown on every exit path.
type Scraper struct {
	sessions *SessionManager
}

// NewScraper creates a scraper with the given settle timing.
func NewScraper(timing Timing) *Scraper {
	return &Scraper{sessions: NewSessionManager(timing)}
}

// Scrape runs one full extraction and returns the collected records in
// season, page, row order.
func (s *Scraper) Scrape(ctx context.Context, cfg Config) ([]BoxScoreRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Acquire(ctx, cfg.TargetURL)
	if err != nil {
		return nil, err
	}
	defer s.sessions.Release(sess)

	return NewEngine(sess.Backend()).Run(ctx, cfg)
}
