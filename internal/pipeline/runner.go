package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/extract"
	"github.com/fortuna/courtside/internal/publisher"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/transform"
)

// lastRunTTL bounds how long a cached run summary is served.
const lastRunTTL = 24 * time.Hour

// Extractor produces raw box-score records from the stats site.
type Extractor interface {
	Scrape(ctx context.Context, cfg extract.Config) ([]extract.BoxScoreRecord, error)
}

// Loader persists transformed rows.
type Loader interface {
	UpsertBatch(ctx context.Context, rows []store.BoxScore) (int, error)
}

// Runner executes one extract → transform → load pass.
type Runner struct {
	targetURL string
	extractor Extractor
	loader    Loader

	// Optional collaborators; nil disables the corresponding side channel.
	cache     *cache.RedisCache
	publisher *publisher.RedisPublisher
}

// NewRunner constructs a runner over the given stages.
func NewRunner(targetURL string, extractor Extractor, loader Loader) *Runner {
	return &Runner{
		targetURL: targetURL,
		extractor: extractor,
		loader:    loader,
	}
}

// WithCache attaches a Redis cache for run-summary caching.
func (r *Runner) WithCache(c *cache.RedisCache) *Runner {
	r.cache = c
	return r
}

// WithPublisher attaches a Redis stream publisher for run events.
func (r *Runner) WithPublisher(p *publisher.RedisPublisher) *Runner {
	r.publisher = p
	return r
}

// Run executes the spec, reporting progress via the Reporter if provided.
// The returned Summary is populated on failure too, so callers can persist
// partial outcomes.
func (r *Runner) Run(ctx context.Context, runID string, spec RunSpec, reporter Reporter) (Summary, error) {
	summary := Summary{
		RunID:      runID,
		Seasons:    spec.Seasons,
		SeasonType: spec.SeasonType,
		Status:     RunStatusRunning,
		StartedAt:  time.Now(),
	}

	if reporter != nil {
		reporter.OnRunStart(spec)
	}

	report := func(stage, message string) {
		if reporter != nil {
			reporter.OnStage(stage, message)
		}
	}

	report("extract", fmt.Sprintf("Scraping %d season(s), type %q", len(spec.Seasons), spec.SeasonType))

	records, err := r.extractor.Scrape(ctx, extract.Config{
		TargetURL:  r.targetURL,
		Seasons:    spec.Seasons,
		SeasonType: spec.SeasonType,
	})
	if err != nil {
		return r.fail(ctx, summary, reporter, fmt.Errorf("extract: %w", err))
	}
	summary.RecordsExtracted = len(records)
	report("extract", fmt.Sprintf("Extracted %d records", len(records)))

	report("transform", "Normalizing records")
	rows := transform.Process(records)

	if spec.DryRun {
		report("load", "Dry-run mode: no data will be written")
		return r.complete(ctx, summary, reporter)
	}

	report("load", fmt.Sprintf("Loading %d rows", len(rows)))
	loaded, err := r.loader.UpsertBatch(ctx, rows)
	if err != nil {
		summary.RecordsLoaded = loaded
		return r.fail(ctx, summary, reporter, fmt.Errorf("load: %w", err))
	}
	summary.RecordsLoaded = loaded
	report("load", fmt.Sprintf("✓ Loaded %d rows", loaded))

	if r.publisher != nil {
		if err := publisher.PublishRecordBatches(ctx, r.publisher, rows); err != nil {
			log.Printf("⚠️  Failed to publish record batches: %v", err)
		}
	}

	return r.complete(ctx, summary, reporter)
}

func (r *Runner) complete(ctx context.Context, summary Summary, reporter Reporter) (Summary, error) {
	summary.Status = RunStatusCompleted
	summary.CompletedAt = time.Now()

	r.finish(ctx, summary)
	if reporter != nil {
		reporter.OnRunComplete(summary)
	}
	return summary, nil
}

func (r *Runner) fail(ctx context.Context, summary Summary, reporter Reporter, err error) (Summary, error) {
	summary.Status = RunStatusFailed
	summary.CompletedAt = time.Now()
	summary.Error = err.Error()

	r.finish(ctx, summary)
	if reporter != nil {
		reporter.OnRunError(err)
	}
	return summary, err
}

// finish pushes the summary to the optional side channels.
func (r *Runner) finish(ctx context.Context, summary Summary) {
	if r.cache != nil {
		if err := r.cache.SetLastRunSummary(ctx, summary, lastRunTTL); err != nil {
			log.Printf("⚠️  Failed to cache run summary: %v", err)
		}
	}
	if r.publisher != nil {
		if err := r.publisher.PublishRunSummary(ctx, summary); err != nil {
			log.Printf("⚠️  Failed to publish run summary: %v", err)
		}
	}
}
