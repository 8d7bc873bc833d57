package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fal-engine/catalog"
	"fal-engine/config"
	"fal-engine/guard"
	"fal-engine/reading"
	"fal-engine/web"
	"fal-engine/web/middleware"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Load config (which includes log level setting)
	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	symbols := catalog.Load(cfg.SymbolsPath, cfg.CultureNotesPath, logger)

	history := guard.NewHistoryStore(guard.HistoryOptions{
		MaxRecent:        cfg.MaxRecent,
		SimThreshold:     cfg.SimhashSimThreshold,
		ExactComboWindow: cfg.ExactComboWindow(),
	})
	cooldown := guard.NewTemplateCooldown(cfg.TemplateCooldown())

	seeds, err := guard.NewSeedGenerator(cfg.SeedCacheSize)
	if err != nil {
		logger.Fatal("Failed to initialize seed generator", zap.Error(err))
	}

	generator := reading.NewGenerator(cfg, symbols, history, cooldown, seeds, logger)

	limiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerMinute: cfg.RateLimitRequestsPerMin,
		BurstSize:         cfg.RateLimitBurstSize,
	}, logger)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cleanupService := web.NewCleanupService(history, cooldown, limiter, logger)
	go web.StartStoreCleanup(ctx, cfg, cleanupService, logger)

	webServer := web.NewServer(web.Deps{
		Generator:      generator,
		History:        history,
		Cooldown:       cooldown,
		Limiter:        limiter,
		CatalogSymbols: symbols.Size(),
	}, logger, cfg)

	port := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting fal-engine web server",
		zap.String("port", port),
		zap.Float64("sim_threshold", cfg.SimhashSimThreshold),
		zap.Int("max_recent", cfg.MaxRecent),
		zap.Int("max_attempts", cfg.MaxAttempts))
	if err := webServer.Start(ctx, port); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}
