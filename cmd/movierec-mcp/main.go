// Package main provides the entry point for the movierec MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/movierec/internal/config"
	"github.com/raphaelgruber/movierec/internal/dataset"
	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/server"
	"github.com/raphaelgruber/movierec/internal/service"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("movierec-mcp starting",
		"version", version,
		"dataset", cfg.DatasetPath,
		"result_limit", cfg.ResultLimit,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	collector := metrics.NewCollector()
	loader := dataset.NewLoader(cfg.DatasetPath, dataset.ReadOptions{Encoding: cfg.DatasetEncoding}, logger, collector)
	svc := service.NewRecommendService(loader, service.Options{
		Limit:  cfg.ResultLimit,
		Cutoff: cfg.MatchCutoff,
	}, logger, collector)

	if cfg.Warm {
		if err := svc.Warm(ctx); err != nil {
			logger.Warn("index warm-up failed, will retry on first call", "error", err)
		}
	}

	// Create and setup server with tools
	srv := server.New(version, logger)
	srv.Setup(svc)
	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
