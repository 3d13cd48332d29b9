// Package main is the entry point for the airline schedule search service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/airline-ops/schedule-search-service/internal/adapter/cache"
	schedulehttp "github.com/airline-ops/schedule-search-service/internal/adapter/http"
	"github.com/airline-ops/schedule-search-service/internal/adapter/http/middleware"
	"github.com/airline-ops/schedule-search-service/internal/adapter/postgres"
	"github.com/airline-ops/schedule-search-service/internal/config"
	"github.com/airline-ops/schedule-search-service/internal/infrastructure/logger"
	"github.com/airline-ops/schedule-search-service/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "schedule-search",
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Database connection established")

	// Repositories
	scheduleRepo := postgres.NewScheduleRepository(pool)
	seatInventory := postgres.NewSeatInventory(pool)

	// Optional Redis-backed result cache
	var resultCache usecase.ResultCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewResultCache(ctx, cfg.Redis.Addr, cfg.Redis.TTL, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
		}
		defer redisCache.Close()
		resultCache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("Result cache enabled")
	}

	// Use cases
	engine := usecase.NewConnectionEngine(scheduleRepo, log.Logger)
	searchUC := usecase.NewScheduleSearch(scheduleRepo, engine, resultCache, log.Logger)
	availabilityUC := usecase.NewAvailability(scheduleRepo, seatInventory)
	adminUC := usecase.NewScheduleAdmin(scheduleRepo, scheduleRepo)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Request ID, request logging and panic recovery
	middleware.Setup(e, log.Logger)

	handler := schedulehttp.NewScheduleHandler(searchUC, availabilityUC, adminUC)
	schedulehttp.RegisterRoutes(e, handler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, log)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
