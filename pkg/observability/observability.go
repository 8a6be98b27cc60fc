// Package observability provides OpenTelemetry tracing and run metrics for
// sortbench.
//
// A disabled Provider is fully usable: spans come from the global no-op
// tracer and metric recording is skipped.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "sortbench"

// Config configures the OpenTelemetry providers.
type Config struct {
	ServiceName    string
	ServiceVersion string
	OTLPEndpoint   string // gRPC, e.g. "localhost:4317"
	BatchTimeout   time.Duration
	ExportInterval time.Duration
	Enabled        bool
	Insecure       bool
}

// DefaultConfig returns a disabled configuration with local defaults.
func DefaultConfig() *Config {
	return &Config{
		ServiceName:    "sortbench",
		ServiceVersion: "dev",
		OTLPEndpoint:   "localhost:4317",
		BatchTimeout:   5 * time.Second,
		ExportInterval: 15 * time.Second,
	}
}

// Provider manages the trace and metric providers and the run instruments.
type Provider struct {
	config         *Config
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter
	logger         *slog.Logger

	runs        metric.Int64Counter
	duration    metric.Float64Histogram
	comparisons metric.Int64Histogram
	swaps       metric.Int64Histogram
}

// New creates a provider. With telemetry disabled no exporter is created.
func New(ctx context.Context, config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	p := &Provider{
		config: config,
		logger: slog.Default().With("component", "observability"),
	}

	if !config.Enabled {
		p.logger.DebugContext(ctx, "observability disabled")
		return p, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if err := p.initTraceProvider(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to init trace provider: %w", err)
	}
	if err := p.initMetricProvider(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to init metric provider: %w", err)
	}

	p.tracer = p.tracerProvider.Tracer(instrumentationName,
		trace.WithInstrumentationVersion(config.ServiceVersion),
	)
	p.meter = p.meterProvider.Meter(instrumentationName,
		metric.WithInstrumentationVersion(config.ServiceVersion),
	)
	if err := p.initRunMetrics(); err != nil {
		return nil, fmt.Errorf("failed to init run metrics: %w", err)
	}

	p.logger.InfoContext(ctx, "observability initialized",
		"service", config.ServiceName,
		"endpoint", config.OTLPEndpoint,
		"insecure", config.Insecure,
	)
	return p, nil
}

// newWithMeterProvider builds an enabled provider around an existing meter
// provider, without exporters.
func newWithMeterProvider(mp *sdkmetric.MeterProvider) (*Provider, error) {
	p := &Provider{
		config:        &Config{Enabled: true, ServiceName: instrumentationName},
		meterProvider: mp,
		meter:         mp.Meter(instrumentationName),
		logger:        slog.Default().With("component", "observability"),
	}
	if err := p.initRunMetrics(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Provider) initTraceProvider(ctx context.Context, res *resource.Resource) error {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(p.config.OTLPEndpoint),
	}
	if p.config.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	p.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(p.config.BatchTimeout),
		),
	)
	otel.SetTracerProvider(p.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return nil
}

func (p *Provider) initMetricProvider(ctx context.Context, res *resource.Resource) error {
	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(p.config.OTLPEndpoint),
	}
	if p.config.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create metric exporter: %w", err)
	}

	interval := p.config.ExportInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(interval),
		)),
	)
	otel.SetMeterProvider(p.meterProvider)
	return nil
}

func (p *Provider) initRunMetrics() error {
	var err error

	p.runs, err = p.meter.Int64Counter("sortbench.runs.total",
		metric.WithDescription("Benchmark runs by algorithm, case and status"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	p.duration, err = p.meter.Float64Histogram("sortbench.run.duration",
		metric.WithDescription("Wall-clock duration of successful sorts"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300),
	)
	if err != nil {
		return err
	}

	p.comparisons, err = p.meter.Int64Histogram("sortbench.run.comparisons",
		metric.WithDescription("Comparisons performed per run"),
		metric.WithUnit("{comparison}"),
	)
	if err != nil {
		return err
	}

	p.swaps, err = p.meter.Int64Histogram("sortbench.run.swaps",
		metric.WithDescription("Swaps or moves performed per run"),
		metric.WithUnit("{swap}"),
	)
	return err
}

// Enabled reports whether telemetry is exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.config.Enabled
}

// Shutdown flushes and stops the providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			p.logger.ErrorContext(ctx, "failed to shutdown trace provider", "error", err)
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			p.logger.ErrorContext(ctx, "failed to shutdown metric provider", "error", err)
		}
	}
	return nil
}

// Tracer returns the configured tracer, or the global one when disabled.
func (p *Provider) Tracer() trace.Tracer {
	if p == nil || p.tracer == nil {
		return otel.Tracer(instrumentationName)
	}
	return p.tracer
}

// Meter returns the configured meter, or the global one when disabled.
func (p *Provider) Meter() metric.Meter {
	if p == nil || p.meter == nil {
		return otel.Meter(instrumentationName)
	}
	return p.meter
}

// StartSpan starts a span named name.
func (p *Provider) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return p.Tracer().Start(ctx, name, opts...)
}

// Run describes one measured run for metric recording.
type Run struct {
	Algorithm   string
	Case        string
	N           int
	Status      string
	Elapsed     *time.Duration
	Comparisons int64
	Swaps       int64
}

// RecordRun records the run counter and, for executed runs, the count
// histograms. Duration is recorded only when Elapsed is set.
func (p *Provider) RecordRun(ctx context.Context, r Run) {
	if p == nil || p.runs == nil {
		return
	}
	attrs := metric.WithAttributes(RunAttributes(r.Algorithm, r.Case, r.N, r.Status)...)
	p.runs.Add(ctx, 1, attrs)
	if r.Status == "SKIPPED" {
		return
	}
	p.comparisons.Record(ctx, r.Comparisons, attrs)
	p.swaps.Record(ctx, r.Swaps, attrs)
	if r.Elapsed != nil {
		p.duration.Record(ctx, r.Elapsed.Seconds(), attrs)
	}
}

// Attribute keys attached to run spans and metrics.
var (
	AttrAlgorithm = attribute.Key("sortbench.algorithm")
	AttrCase      = attribute.Key("sortbench.case")
	AttrSize      = attribute.Key("sortbench.n")
	AttrStatus    = attribute.Key("sortbench.status")
	AttrRunID     = attribute.Key("sortbench.run_id")
)

// RunAttributes creates attributes for a run. Status is omitted when empty.
func RunAttributes(algorithm, c string, n int, status string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		AttrAlgorithm.String(algorithm),
		AttrCase.String(c),
		AttrSize.Int(n),
	}
	if status != "" {
		attrs = append(attrs, AttrStatus.String(status))
	}
	return attrs
}
