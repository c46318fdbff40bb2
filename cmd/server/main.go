package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/tinyledger/internal/adapter/http"
	"github.com/iho/tinyledger/internal/adapter/http/handler"
	"github.com/iho/tinyledger/internal/adapter/http/middleware"
	"github.com/iho/tinyledger/internal/adapter/repository/memory"
	"github.com/iho/tinyledger/internal/infrastructure/config"
	"github.com/iho/tinyledger/internal/infrastructure/logger"
	"github.com/iho/tinyledger/internal/infrastructure/metrics"
	"github.com/iho/tinyledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger
	zerolog.SetGlobalLevel(appLogger.GetLevel())

	// The store is in-memory and lost on restart by design.
	ledgerRepo := memory.NewLedgerRepository()
	idGen := memory.NewULIDGenerator()

	// Initialize use case
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, idGen, cfg.CurrencyPrecision)

	// Initialize metrics and handlers
	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	accountHandler := handler.NewAccountHandler(ledgerUC, appMetrics)
	transactionHandler := handler.NewTransactionHandler(ledgerUC, appMetrics)
	healthHandler := handler.NewHealthHandler()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		HealthHandler:      healthHandler,
		LoggingMiddleware:  middleware.NewLoggingMiddleware(appLogger),
		RateLimiter:        rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
