package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/pipeline"
)

// Config holds scheduler configuration.
type Config struct {
	DailyHour  int           // hour of day for the scheduled run, local time
	MaxRetries int           // attempts per scheduled run
	RetryDelay time.Duration // delay between attempts
	Spec       pipeline.RunSpec
}

// DefaultConfig returns default scheduler configuration.
func DefaultConfig() *Config {
	return &Config{
		DailyHour:  3,
		MaxRetries: 3,
		RetryDelay: 5 * time.Second,
	}
}

// Orchestrator triggers the scrape pipeline on a daily schedule.
type Orchestrator struct {
	service *pipeline.Service
	config  *Config
	cancel  context.CancelFunc
}

// NewOrchestrator creates a scheduler over the pipeline service.
func NewOrchestrator(service *pipeline.Service, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Orchestrator{
		service: service,
		config:  config,
	}
}

// Start blocks, running the daily schedule until the context is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	log.Printf("→ Daily scrape scheduler started (runs at %02d:00 daily)", o.config.DailyHour)

	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.DailyHour, 0, 0, 0, now.Location())
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("  Next scheduled scrape: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Daily scrape scheduler stopped")
			return
		case <-time.After(waitDuration):
			log.Println("═══ Scheduled Scrape Starting ═══")
			o.runWithRetry(ctx)
			log.Println("═══ Scheduled Scrape Complete ═══")
		}
	}
}

// Stop cancels the schedule loop.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

func (o *Orchestrator) runWithRetry(ctx context.Context) {
	startTime := time.Now()

	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		summary, err := o.service.Execute(ctx, o.config.Spec, nil)
		if err == nil {
			log.Printf("✓ Scheduled scrape complete in %v: %d records loaded",
				time.Since(startTime).Round(time.Second), summary.RecordsLoaded)
			return
		}

		if errors.Is(err, pipeline.ErrRunInProgress) {
			log.Println("  ⚠️  Skipping scheduled scrape: a run is already in progress")
			return
		}

		log.Printf("  ⚠️  Scheduled scrape attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)
		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	log.Printf("❌ Scheduled scrape failed after %d attempts", o.config.MaxRetries)
}
