package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/api"
	"github.com/leapscholar/leappulse/internal/cache"
	"github.com/leapscholar/leappulse/internal/config"
	"github.com/leapscholar/leappulse/internal/monitoring"
	"github.com/leapscholar/leappulse/internal/notifications"
	"github.com/leapscholar/leappulse/internal/scheduler"
	"github.com/leapscholar/leappulse/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Infof("Starting LeapPulse, monitoring brand %q", cfg.Brand)

	sink := buildStorage(cfg)

	var notifier notifications.Notifier
	if service := notifications.NewService(cfg); service != nil {
		notifier = service
	} else {
		logrus.Info("No notification channel configured, alerts disabled")
	}

	monitor := monitoring.NewService(cfg, sink, notifier)
	cacheService := cache.New(monitor, cfg.CacheTTL, cfg.BootstrapWait)

	schedulerService := scheduler.NewService(cacheService, cfg.RefreshInterval)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.NewHandler(cacheService, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

// buildStorage assembles the persistence fan-out from configuration.
// An unreachable database is fatal at startup; with nothing configured
// the pipeline runs cache-only.
func buildStorage(cfg *config.Config) storage.Sink {
	var sinks []storage.Sink

	if cfg.DatabaseURL != "" {
		store, err := storage.NewPostgresStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}
		logrus.Info("Postgres persistence enabled")
		sinks = append(sinks, store)
	}

	if cfg.StorageAccount != "" {
		store, err := storage.NewAzureStore(cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize blob storage: %v", err)
		}
		logrus.Info("Azure blob persistence enabled")
		sinks = append(sinks, store)
	}

	if multi := storage.NewMulti(sinks...); multi != nil {
		return multi
	}

	logrus.Info("No persistence configured, running cache-only")
	return nil
}
