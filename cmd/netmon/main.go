package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"netmon/internal/collector"
	"netmon/internal/config"
	"netmon/internal/metrics"
	"netmon/internal/monitor"
	"netmon/internal/probe"
	"netmon/internal/report"
	"netmon/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ./netmon.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(cfg.StorageBackend, cfg.StorageDir)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	pingCollector := collector.NewPing(probe.NewPinger(cfg.ProbeTimeout), store, cfg.Targets(), cfg.SampleCount, logger)
	speedCollector := collector.NewSpeed(probe.NewSpeedTester(cfg.SpeedTimeout), store, logger)
	deviceCollector := collector.NewDevices(probe.NewNeighborTable(cfg.ScanTimeout), store, logger)

	aggregator := report.NewAggregator(pingCollector, speedCollector, deviceCollector, cfg.StorageDir, os.Stdout, logger)
	mon := monitor.New(aggregator, monitor.Options{
		Interval:   cfg.CycleInterval,
		Backoff:    cfg.ErrorBackoff,
		ChartEvery: cfg.ChartEvery,
		ChartDir:   cfg.StorageDir,
	}, logger)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	logger.Info("monitoring", "targets", cfg.Targets(), "storage", cfg.StorageDir, "backend", cfg.StorageBackend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Cycle errors are handled inside the loop; Run only fails on setup
	// problems, so an operator interrupt exits with status 0.
	if err := mon.Run(ctx); err != nil {
		logger.Error("monitor failed", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// setupLogger mirrors monitor output to stderr and to a log file inside the
// storage directory.
func setupLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(cfg.StorageDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating storage directory: %w", err)
	}

	path := filepath.Join(cfg.StorageDir, "network_monitor.log")
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stderr, file), &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, func() { file.Close() }, nil
}
