package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/segyhp/zakat-engine/internal/config"
	"github.com/segyhp/zakat-engine/internal/domain"
	"github.com/segyhp/zakat-engine/internal/rates"
)

func main() {
	_ = godotenv.Load()

	log.Info().Msg("Starting rate refresh scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	client := rates.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.ProviderTimeout(), log.Logger)
	cache := rates.NewCache(redisClient)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds())

	_, err = c.AddFunc(cfg.Scheduler.CronSpec, func() {
		refreshRates(client, cache, cfg.RateCurrencies())
	})
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Scheduler.CronSpec).Msg("Failed to schedule rate refresh job")
	}

	// Warm the cache once on startup, then on the cron cadence.
	refreshRates(client, cache, cfg.RateCurrencies())

	c.Start()
	log.Info().Str("spec", cfg.Scheduler.CronSpec).Msg("Scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down scheduler...")
	c.Stop()
	log.Info().Msg("Scheduler stopped")
}

// refreshRates is best effort: a failed fetch is logged and skipped, the
// cached rate from the previous run stays in place until its TTL expires.
func refreshRates(client *rates.Client, cache *rates.Cache, currencies []string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, currency := range currencies {
		for _, basis := range []domain.NisabBasis{domain.NisabBasisGold, domain.NisabBasisSilver} {
			rate, err := client.FetchPerGram(ctx, basis, currency)
			if err != nil {
				log.Warn().Err(err).
					Str("basis", string(basis)).
					Str("currency", currency).
					Msg("Rate refresh failed")
				continue
			}

			if err := cache.Store(ctx, rate); err != nil {
				log.Warn().Err(err).
					Str("basis", string(basis)).
					Str("currency", currency).
					Msg("Failed to cache rate")
				continue
			}

			log.Info().
				Str("basis", string(basis)).
				Str("currency", currency).
				Str("per_gram", rate.PerGram.String()).
				Msg("Rate refreshed")
		}
	}
}
