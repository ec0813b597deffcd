package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolhealth-backend/internal/config"
	"github.com/stemsi/schoolhealth-backend/internal/database"
	"github.com/stemsi/schoolhealth-backend/internal/handler"
	"github.com/stemsi/schoolhealth-backend/internal/logger"
	"github.com/stemsi/schoolhealth-backend/internal/middleware"
	"github.com/stemsi/schoolhealth-backend/internal/repository"
	"github.com/stemsi/schoolhealth-backend/internal/router"
	"github.com/stemsi/schoolhealth-backend/internal/service"
	"github.com/stemsi/schoolhealth-backend/internal/validator"
	"github.com/stemsi/schoolhealth-backend/internal/worker"
)

const sessionSweepInterval = time.Minute

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("session_backend", cfg.SessionBackend).
		Msg("Starting School Health Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Session Store and Events ──────────────────────────────────────
	// With Redis, events go through a channel so every instance's streams
	// see them; in memory they go straight to the local hub.
	events := service.NewSessionEvents()
	var (
		rdb       *redis.Client
		store     service.SessionStore
		publisher service.EventPublisher = events
	)
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		var err error
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		store = service.NewRedisSessionStore(rdb)
		publisher = service.NewRedisEventPublisher(rdb, log)
		go worker.NewSessionRelayWorker(rdb, events, log).Start(ctx)
	default:
		mem := service.NewMemorySessionStore()
		go mem.StartSweeper(ctx, sessionSweepInterval)
		store = mem
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, service.NewStaticAuthenticator(), store, publisher, log)
	healthService := service.NewHealthService(repository.NewSampleHealthRepository(), log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Access: handler.NewAccessHandler(),
		Health: handler.NewHealthHandler(healthService),
		WS:     handler.NewWSHandler(events, log, cfg.AllowedOrigins),
		System: handler.NewSystemHandler(rdb, cfg.SessionBackend, log),
	}

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, time.Minute)
	go loginLimiter.StartCleanup(ctx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, loginLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Stops the session sweeper, the event relay and the limiter cleanup.
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
