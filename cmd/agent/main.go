package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vshulcz/Telemetra/internal/adapters/collector/system"
	"github.com/vshulcz/Telemetra/internal/adapters/publisher/datadog"
	"github.com/vshulcz/Telemetra/internal/config"
	"github.com/vshulcz/Telemetra/internal/metrics"
	"github.com/vshulcz/Telemetra/internal/ports"
	"github.com/vshulcz/Telemetra/internal/services/exporter"
)

func main() {
	cfg, err := config.LoadExporterConfig(os.Args[1:], nil)
	if err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	var sender ports.SeriesSender
	if cfg.WriteToAPI {
		sender, err = datadog.New(cfg.APIHost, nil, cfg.APIKey, cfg.Gzip)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
	}

	reg := metrics.NewRegistry()
	exp := exporter.New(reg, sender, cfg, logger)
	col := system.New(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := col.Start(ctx, cfg.PollInterval); err != nil {
		log.Fatalf("failed to start collector: %v", err)
	}
	defer col.Stop()

	logger.Info("agent started",
		zap.String("api_host", cfg.APIHost),
		zap.Duration("flush", cfg.FlushInterval),
		zap.Duration("poll", cfg.PollInterval),
		zap.Bool("gzip", cfg.Gzip),
		zap.Bool("stdout", cfg.WriteToStdout),
		zap.Bool("api", cfg.WriteToAPI),
	)
	if err := exp.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
