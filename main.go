package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"welldecore/pricetracker/config"
	"welldecore/pricetracker/helpers"
	"welldecore/pricetracker/internal/alert"
	"welldecore/pricetracker/internal/scraper"
	"welldecore/pricetracker/logger"
	"welldecore/pricetracker/services/cache"
	"welldecore/pricetracker/services/notify"
	"welldecore/pricetracker/services/publisher"
	"welldecore/pricetracker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	for _, warning := range cfg.Warnings() {
		log.Warn().Msg(warning)
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("check_interval", cfg.CheckInterval).
		Int("categories", len(cfg.Categories)).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize optional services
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	}

	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		redisPublisher := publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		defer redisPublisher.Close()
		pub = redisPublisher
		logger.Info("Mirroring alerts to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	// Build the pipeline
	fetcher := helpers.NewPageFetcher(cfg.UserAgent, cfg.AcceptLanguage)
	extractor := scraper.NewExtractor(scraper.AmazonSelectors(), cfg.BaseDomain)
	categoryScraper := scraper.NewCategoryScraper(
		fetcher.FetchPage,
		extractor,
		cfg.MaxItemsPerCategory,
		cacheSvc,
		cfg.FetchBlockTime,
	)
	composer := alert.NewComposer(cfg.AffiliateTag)
	notifier := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)

	categories := make([]scraper.Category, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		categories = append(categories, scraper.Category{Name: c.Name, URL: c.URL})
	}

	rules := scraper.Rules{
		MinPrice:        cfg.MinPrice,
		MaxPrice:        cfg.MaxPrice,
		MegaMinDiscount: cfg.MegaMinDiscount,
		MegaMaxDiscount: cfg.MegaMaxDiscount,
	}

	// Create and start worker
	w := worker.NewWorker(
		ctx,
		categories,
		categoryScraper,
		rules,
		composer,
		notifier,
		pub,
		cfg.CheckInterval,
	)

	// Start worker in a goroutine
	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting price tracker worker")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker exit
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
		<-workerDone
	case err := <-workerDone:
		if err != nil {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
}
