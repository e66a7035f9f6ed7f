package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/segyhp/zakat-engine/internal/config"
	"github.com/segyhp/zakat-engine/internal/content"
	"github.com/segyhp/zakat-engine/internal/domain"
	"github.com/segyhp/zakat-engine/internal/handler"
	"github.com/segyhp/zakat-engine/internal/rates"
	"github.com/segyhp/zakat-engine/internal/repository"
	"github.com/segyhp/zakat-engine/internal/service"
	"github.com/segyhp/zakat-engine/pkg/response"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	snapshotRepo := repository.NewSnapshotRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(redisClient)

	// Initialize rate lookup
	ratesClient := rates.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.ProviderTimeout(), log.Logger)
	ratesCache := rates.NewCache(redisClient)

	// Initialize service
	nisab := service.NisabConfig{
		GoldGrams:   cfg.NisabWeight(domain.NisabBasisGold),
		SilverGrams: cfg.NisabWeight(domain.NisabBasisSilver),
		ZakatRate:   cfg.ZakatRate(),
	}
	zakatService := service.NewZakatService(snapshotRepo, preferenceRepo, nisab, log.Logger)

	zakatHandler := handler.NewZakatHandler(zakatService)
	ratesHandler := handler.NewRatesHandler(ratesClient, ratesCache)
	contentHandler := handler.NewContentHandler(content.NewStore())
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.HealthTimeout())

	// Setup routes
	router := setupRoutes(zakatHandler, ratesHandler, contentHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	zakatHandler *handler.ZakatHandler,
	ratesHandler *handler.RatesHandler,
	contentHandler *handler.ContentHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/zakat/calculate", zakatHandler.Calculate).Methods("POST")
	api.HandleFunc("/zakat/summary", zakatHandler.Summary).Methods("POST")

	api.HandleFunc("/devices/{deviceId}/snapshot", zakatHandler.GetSnapshot).Methods("GET")
	api.HandleFunc("/devices/{deviceId}/snapshot", zakatHandler.SaveSnapshot).Methods("PUT")
	api.HandleFunc("/devices/{deviceId}/snapshot", zakatHandler.ResetSnapshot).Methods("DELETE")
	api.HandleFunc("/devices/{deviceId}/preferences/tab", zakatHandler.GetActiveTab).Methods("GET")
	api.HandleFunc("/devices/{deviceId}/preferences/tab", zakatHandler.SetActiveTab).Methods("PUT")

	api.HandleFunc("/metal-rates", ratesHandler.GetRate).Methods("GET")
	api.HandleFunc("/metal-rates/latest", ratesHandler.GetCachedRate).Methods("GET")

	api.HandleFunc("/pillars", contentHandler.ListPillars).Methods("GET")
	api.HandleFunc("/pillars/{id}", contentHandler.GetPillar).Methods("GET")

	return router
}
