package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/extract"
	"github.com/fortuna/courtside/internal/pipeline"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

const (
	appName    = "courtside-scrape"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	var (
		configPath = flag.String("config", "", "Path to INI config file")
		targetURL  = flag.String("url", "", "Stats page URL (overrides config)")
		seasons    = flag.String("seasons", "", "Comma-separated seasons to scrape (e.g., 2023-24,2024-25)")
		seasonType = flag.String("season-type", "", "Season type (e.g., 'Regular Season')")
		dsn        = flag.String("dsn", "", "PostgreSQL DSN (overrides config)")
		dryRun     = flag.Bool("dry-run", false, "Extract and transform but do not write to the database")
	)

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *targetURL != "" {
		cfg.Scrape.TargetURL = *targetURL
	}
	if *seasons != "" {
		cfg.Scrape.Seasons = strings.Split(*seasons, ",")
	}
	if *seasonType != "" {
		cfg.Scrape.SeasonType = *seasonType
	}
	if *dsn != "" {
		cfg.Database.DSN = *dsn
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	scraper := extract.NewScraper(extract.Timing{
		SettleTimeout: cfg.Scrape.SettleTimeout,
		PollInterval:  cfg.Scrape.PollInterval,
	})

	// A dry run never touches the database, so it needs no connection.
	var loader pipeline.Loader
	var repo *pipeline.RunRepository
	if !*dryRun {
		db, err := store.NewDatabase(cfg.Database.DSN)
		if err != nil {
			log.Fatalf("connect database: %v", err)
		}
		defer db.Close()

		if err := db.RunMigrations(); err != nil {
			log.Fatalf("run migrations: %v", err)
		}

		loader = repository.NewBoxScoreRepository(db)
		repo = pipeline.NewRunRepository(db)
	}

	runner := pipeline.NewRunner(cfg.Scrape.TargetURL, scraper, loader)
	svc := pipeline.NewService(runner, repo)

	spec := pipeline.RunSpec{
		Seasons:    cfg.Scrape.Seasons,
		SeasonType: cfg.Scrape.SeasonType,
		DryRun:     *dryRun,
	}

	summary, err := svc.Execute(context.Background(), spec, &consoleReporter{})
	if err != nil {
		log.Fatalf("scrape failed: %v", err)
	}

	log.Printf("✓ Scrape completed: %d records extracted, %d loaded", summary.RecordsExtracted, summary.RecordsLoaded)
}

type consoleReporter struct{}

func (r *consoleReporter) OnRunStart(spec pipeline.RunSpec) {
	log.Printf("Run starting: seasons=%s type=%q dry-run=%v",
		strings.Join(spec.Seasons, ","), spec.SeasonType, spec.DryRun)
}

func (r *consoleReporter) OnStage(stage, message string) {
	log.Printf("[%s] %s", stage, message)
}

func (r *consoleReporter) OnRunComplete(summary pipeline.Summary) {
	log.Printf("Run %s complete in %v", summary.RunID, summary.CompletedAt.Sub(summary.StartedAt).Round(time.Millisecond))
}

func (r *consoleReporter) OnRunError(err error) {
	log.Printf("Run failed: %v", err)
}
