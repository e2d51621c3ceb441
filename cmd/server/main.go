package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/quotewatch/backend/config"
	httpDelivery "github.com/quotewatch/backend/internal/delivery/http"
	"github.com/quotewatch/backend/internal/infrastructure/alfie"
	"github.com/quotewatch/backend/internal/infrastructure/cache"
	"github.com/quotewatch/backend/internal/infrastructure/scheduler"
	"github.com/quotewatch/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting QuoteWatch Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Alfie API: %s", cfg.Alfie.BaseURL)

	debug := cfg.Server.Environment == "development"

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	alfieClient := alfie.NewClient(cfg.Alfie.BaseURL, cfg.Alfie.Timeout, cfg.RateLimit.AlfiePerMinute)
	if debug {
		alfieClient.SetDebug(true)
		log.Printf("Alfie client debug mode enabled")
	}

	// Initialize usecase layer
	extractor := usecase.NewAliasExtractor(debug)

	scheduleService := usecase.NewScheduleService(alfieClient, extractor, usecase.ScheduleServiceConfig{
		IntervalDays:       cfg.Schedule.IntervalDays,
		EnableDebugLogging: debug,
	})

	rankingService := usecase.NewQuoteRankingService(memoryCache, alfieClient, usecase.QuoteRankingServiceConfig{
		CacheTTL: cfg.Cache.TTL,
		TopN:     cfg.Schedule.TopN,
	})

	log.Printf("Schedule: interval=%dd, top_n=%d", cfg.Schedule.IntervalDays, cfg.Schedule.TopN)

	// Watch mode: re-run the configured request on a cron cadence
	if cfg.Watch.Enabled {
		watchService := usecase.NewWatchService(scheduleService, cfg.Watch.RequestPath)
		watcher, err := scheduler.NewWatcher(cfg.Watch.Cron, func(fired time.Time) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if err := watchService.RunOnce(ctx); err != nil {
				log.Printf("[WATCH] run failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Failed to configure watch mode: %v", err)
		}
		watcher.Start()
		log.Printf("Watch mode enabled: cron=%q request=%s", cfg.Watch.Cron, cfg.Watch.RequestPath)
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(scheduleService, rankingService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
