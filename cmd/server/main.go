package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/incidra/incidra/internal/adapter/cache"
	adapterhttp "github.com/incidra/incidra/internal/adapter/http"
	"github.com/incidra/incidra/internal/adapter/upstream"
	"github.com/incidra/incidra/internal/config"
	"github.com/incidra/incidra/internal/token"
	"github.com/incidra/incidra/internal/usecase"
)

func main() {
	ctx := context.Background()

	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := newLogger(cfg)
	logger.WithFields(logrus.Fields{
		"version": "1.0",
		"env":     cfg.Server.Environment,
	}).Info("Application starting")

	// Cache store is required infrastructure: misconfiguration is fatal,
	// an unreachable backend at boot merely degrades.
	store, err := cache.NewRedisStore(cfg.Redis.URL, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize cache store")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	healthy, message := store.Ping(pingCtx)
	cancel()
	if healthy {
		logger.Info("Successfully connected to Redis")
	} else {
		logger.WithField("message", message).Warn("Redis connection failed, serving degraded")
	}

	tokenService := token.NewJWTService(cfg.Security.JWTSecret, cfg.Security.TokenTTL)

	incidentClient := upstream.NewIncidentClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.Timeout,
		tokenService,
		logger,
	)

	dashboardUseCase := usecase.NewDashboardUseCase(store, incidentClient, logger, cfg.Cache.TTL)

	authMiddleware := adapterhttp.NewAuthMiddleware(tokenService)
	dashboardHandler := adapterhttp.NewDashboardHandler(dashboardUseCase, authMiddleware)
	healthHandler := adapterhttp.NewHealthHandler(store)

	server := adapterhttp.NewServer(
		adapterhttp.ServerConfig{
			Host:          cfg.Server.Host,
			Port:          cfg.Server.Port,
			ServicePrefix: cfg.Server.ServicePrefix,
			ReadTimeout:   cfg.Server.ReadTimeout,
			WriteTimeout:  cfg.Server.WriteTimeout,
			IdleTimeout:   cfg.Server.IdleTimeout,
		},
		dashboardHandler,
		healthHandler,
		logger,
	)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339Nano, FullTimestamp: true})
	}
	logger.SetOutput(os.Stdout)

	return logger
}
