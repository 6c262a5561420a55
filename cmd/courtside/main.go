package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fortuna/courtside/internal/api/rest"
	"github.com/fortuna/courtside/internal/api/websocket"
	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/extract"
	"github.com/fortuna/courtside/internal/pipeline"
	"github.com/fortuna/courtside/internal/publisher"
	"github.com/fortuna/courtside/internal/scheduler"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

const (
	serviceName    = "courtside"
	serviceVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "Path to INI config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	setupLogging(cfg.LogFile)
	log.Printf("Starting %s v%s - Box Score ETL Service", serviceName, serviceVersion)

	// Initialize database connection
	db, err := store.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("✓ Connected to database")

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// Redis is optional; without it the cache and publisher side channels
	// are simply disabled.
	var redisCache *cache.RedisCache
	var redisPublisher *publisher.RedisPublisher
	if cfg.Redis.URL != "" {
		redisCache = connectCache(cfg.Redis.URL)
		defer redisCache.Close()

		redisPublisher, err = publisher.NewRedisPublisher(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to initialize Redis publisher: %v", err)
		}
		defer redisPublisher.Close()

		log.Println("✓ Connected to Redis")
	}

	// Assemble the pipeline
	scraper := extract.NewScraper(extract.Timing{
		SettleTimeout: cfg.Scrape.SettleTimeout,
		PollInterval:  cfg.Scrape.PollInterval,
	})
	loader := repository.NewBoxScoreRepository(db)

	runner := pipeline.NewRunner(cfg.Scrape.TargetURL, scraper, loader)
	if redisCache != nil {
		runner.WithCache(redisCache)
	}
	if redisPublisher != nil {
		runner.WithPublisher(redisPublisher)
	}

	pipelineSvc := pipeline.NewService(runner, pipeline.NewRunRepository(db))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduler
	var sched *scheduler.Orchestrator
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewOrchestrator(pipelineSvc, &scheduler.Config{
			DailyHour:  cfg.Scheduler.DailyHour,
			MaxRetries: cfg.Scheduler.MaxRetries,
			RetryDelay: 5 * time.Second,
			Spec: pipeline.RunSpec{
				Seasons:    cfg.Scrape.Seasons,
				SeasonType: cfg.Scrape.SeasonType,
			},
		})
		go sched.Start(ctx)
		log.Println("✓ Scheduler started")
	}

	// REST API server
	restServer := rest.NewServer(cfg.Server.RESTPort, db, pipelineSvc)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.Server.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	// WebSocket progress feed
	wsServer := websocket.NewServer(pipelineSvc)
	go func() {
		log.Printf("Starting WebSocket server on port %s", cfg.Server.WSPort)
		if err := wsServer.Start(cfg.Server.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.Server.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s", cfg.Server.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	cancel()
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

// connectCache retries the Redis connection; the cache container may still
// be coming up when the service starts.
func connectCache(redisURL string) *cache.RedisCache {
	const maxRetries = 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		redisCache, err := cache.NewRedisCache(redisURL)
		if err == nil {
			return redisCache
		}

		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		} else {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
		}
	}
	return nil
}

// setupLogging mirrors output to the configured log file and the console.
func setupLogging(logFile string) {
	if logFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		log.Printf("⚠️  Could not create log directory: %v", err)
		return
	}
	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("⚠️  Could not open log file %s: %v", logFile, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, file))
}
