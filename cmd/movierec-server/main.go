// Package main provides the web server for movierec.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raphaelgruber/movierec/internal/config"
	"github.com/raphaelgruber/movierec/internal/dataset"
	"github.com/raphaelgruber/movierec/internal/httpapi"
	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/service"
)

const version = "0.1.0"

func main() {
	// Parse flags
	noWarm := flag.Bool("no-warm", false, "build the similarity index on the first query instead of at startup")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *noWarm {
		cfg.Warm = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()
	slog.SetDefault(logger)

	logger.Info("starting movierec-server",
		"version", version,
		"port", cfg.ServerPort,
		"dataset", cfg.DatasetPath,
		"config_file", cfg.ConfigFile,
	)

	collector := metrics.NewCollector()
	loader := dataset.NewLoader(cfg.DatasetPath, dataset.ReadOptions{Encoding: cfg.DatasetEncoding}, logger, collector)
	svc := service.NewRecommendService(loader, service.Options{
		Limit:  cfg.ResultLimit,
		Cutoff: cfg.MatchCutoff,
	}, logger, collector)

	// A failed warm-up is not fatal; the next query retries the load.
	if cfg.Warm {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if err := svc.Warm(ctx); err != nil {
			logger.Warn("index warm-up failed, will retry on first query", "error", err)
		}
		cancel()
	}

	api, err := httpapi.New(svc, collector, logger, version)
	if err != nil {
		logger.Error("failed to create HTTP handlers", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      api.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute, // First query may build the index
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Web UI available", "url", fmt.Sprintf("http://localhost:%s/", cfg.ServerPort))
		logger.Info("Metrics available", "url", fmt.Sprintf("http://localhost:%s/metrics", cfg.ServerPort))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
