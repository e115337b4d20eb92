// Package exporter drains the instrument registry on a fixed interval,
// converts the snapshot into wire series, packs them into size-bounded
// payloads, and ships every payload through the configured sender.
package exporter

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vshulcz/Telemetra/internal/config"
	"github.com/vshulcz/Telemetra/internal/domain"
	"github.com/vshulcz/Telemetra/internal/metrics"
	"github.com/vshulcz/Telemetra/internal/ports"
)

// Exporter owns one flush pipeline over a shared registry. Exactly one
// flush runs at a time; scheduled tick errors are logged and dropped,
// manual Flush errors are returned to the caller.
type Exporter struct {
	reg    *metrics.Registry
	sender ports.SeriesSender
	log    *zap.Logger

	console  io.Writer
	tags     []string
	gzip     bool
	stdout   bool
	writeAPI bool
	interval time.Duration

	flushMu sync.Mutex
}

type Option func(*Exporter)

// WithConsole redirects the console sink away from stdout.
func WithConsole(w io.Writer) Option {
	return func(e *Exporter) {
		e.console = w
	}
}

// New wires the registry, sender, and configuration into an Exporter.
// sender may be nil when API export is disabled.
func New(reg *metrics.Registry, sender ports.SeriesSender, cfg config.ExporterConfig, logger *zap.Logger, opts ...Option) *Exporter {
	e := &Exporter{
		reg:      reg,
		sender:   sender,
		log:      logger,
		console:  os.Stdout,
		tags:     slices.Clone(cfg.Tags),
		gzip:     cfg.Gzip,
		stdout:   cfg.WriteToStdout,
		writeAPI: cfg.WriteToAPI,
		interval: cfg.FlushInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Collect drains the registry and merges the static process tags in
// front of each instrument's own tags. Destructive: observations read
// here start a fresh accumulation window.
func (e *Exporter) Collect() []domain.Metric {
	drained := e.reg.Drain(time.Now())
	if len(e.tags) == 0 {
		return drained
	}
	for i := range drained {
		merged := make([]string, 0, len(e.tags)+len(drained[i].Tags))
		merged = append(merged, e.tags...)
		merged = append(merged, drained[i].Tags...)
		drained[i].Tags = merged
	}
	return drained
}

// Flush runs one complete pass: collect, console sink, pack, send.
// Errors are surfaced directly; a scheduled tick wraps Flush and logs
// them instead.
func (e *Exporter) Flush(ctx context.Context) error {
	_, err := e.flush(ctx)
	return err
}

func (e *Exporter) flush(ctx context.Context) (int, error) {
	e.flushMu.Lock()
	defer e.flushMu.Unlock()

	collected := e.Collect()
	series := seriesFrom(collected)
	e.log.Debug("flushing metrics",
		zap.Int("metrics", len(collected)),
		zap.Int("series", len(series)),
	)

	if e.stdout {
		if err := e.writeConsole(series); err != nil {
			return len(collected), err
		}
	}

	if !e.writeAPI || e.sender == nil || len(series) == 0 {
		return len(collected), nil
	}

	payloads, err := pack(series, e.gzip)
	if err != nil {
		return len(collected), err
	}
	return len(collected), e.sender.Send(ctx, payloads)
}

// writeConsole prints one JSON object per series-point per line,
// independent of API export.
func (e *Exporter) writeConsole(series []domain.Series) error {
	enc := json.NewEncoder(e.console)
	for _, s := range series {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}

// Run flushes on every tick until ctx is cancelled. A failed tick
// loses that interval's metrics and never stops the loop; only a bad
// interval is fatal, before the first tick.
func (e *Exporter) Run(ctx context.Context) error {
	if e.interval <= 0 {
		return domain.ErrInterval
	}

	t := time.NewTicker(e.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n, err := e.flush(ctx); err != nil {
				e.log.Warn("flush failed",
					zap.Error(err),
					zap.Int("metrics", n),
				)
			}
		}
	}
}
