package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mindburn-Labs/sortbench/pkg/cases"
	"github.com/Mindburn-Labs/sortbench/pkg/config"
	"github.com/Mindburn-Labs/sortbench/pkg/experiment"
	"github.com/Mindburn-Labs/sortbench/pkg/observability"
	"github.com/Mindburn-Labs/sortbench/pkg/results"
)

// app holds the process-wide wiring shared by subcommands.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	sink      results.Sink
	telemetry *observability.Provider
}

// newApp loads configuration, installs the default logger and opens the
// configured sink. Callers must call close.
func newApp(ctx context.Context, stderr io.Writer) (*app, error) {
	cfg := config.Load()
	logger := newLogger(cfg, stderr)
	slog.SetDefault(logger)

	sink, err := results.Open(ctx, sinkOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("open %s sink: %w", cfg.Sink, err)
	}

	telemetry, err := observability.New(ctx, &observability.Config{
		ServiceName:    "sortbench",
		ServiceVersion: version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
		Insecure:       cfg.OTLPInsecure,
	})
	if err != nil {
		_ = sink.Close()
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	return &app{cfg: cfg, logger: logger, sink: sink, telemetry: telemetry}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.WarnContext(ctx, "telemetry shutdown failed", "error", err)
	}
	if err := a.sink.Close(); err != nil {
		a.logger.WarnContext(ctx, "sink close failed", "error", err)
	}
}

func (a *app) orchestrator(out io.Writer) *experiment.Orchestrator {
	gen := cases.NewGenerator(nil)
	if a.cfg.Seed != nil {
		gen = cases.NewSeededGenerator(*a.cfg.Seed)
	}
	return experiment.New(a.sink,
		experiment.WithGenerator(gen),
		experiment.WithQuadraticLimit(a.cfg.QuadraticLimit),
		experiment.WithMaxDepth(a.cfg.MaxDepth),
		experiment.WithOutput(out),
		experiment.WithLogger(a.logger.With("component", "experiment")),
		experiment.WithTelemetry(a.telemetry),
	)
}

// sinkLabel names the results destination for operator messages.
func (a *app) sinkLabel() string {
	if p, ok := a.sink.(interface{ Path() string }); ok {
		return p.Path()
	}
	return a.cfg.Sink + " results"
}

func sinkOptions(cfg *config.Config) results.Options {
	return results.Options{
		Kind:          results.Kind(cfg.Sink),
		CSVPath:       cfg.ResultsPath,
		SQLitePath:    cfg.SQLitePath,
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisKey:      cfg.RedisKey,
	}
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
