// Package experiment runs batches of measured sorts and records one result
// row per size.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mindburn-Labs/sortbench/pkg/cases"
	"github.com/Mindburn-Labs/sortbench/pkg/config"
	"github.com/Mindburn-Labs/sortbench/pkg/observability"
	"github.com/Mindburn-Labs/sortbench/pkg/results"
	"github.com/Mindburn-Labs/sortbench/pkg/runner"
	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
)

// SkipNote is recorded for quadratic runs above the size limit.
const SkipNote = "SKIPPED: quadratic algorithm N too large"

// Orchestrator runs sizes for an (algorithm, case) pair and appends the
// resulting rows to a sink.
type Orchestrator struct {
	sink           results.Sink
	gen            *cases.Generator
	quadraticLimit int
	maxDepth       int
	out            io.Writer
	logger         *slog.Logger
	telemetry      *observability.Provider
	clock          func() time.Time
	newRunID       func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithGenerator sets the input generator.
func WithGenerator(g *cases.Generator) Option {
	return func(o *Orchestrator) {
		if g != nil {
			o.gen = g
		}
	}
}

// WithQuadraticLimit sets the largest N run for quadratic algorithms.
func WithQuadraticLimit(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.quadraticLimit = n
		}
	}
}

// WithMaxDepth bounds the recursion depth of merge and quick sort.
func WithMaxDepth(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// WithOutput sets the writer that receives operator status lines.
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) {
		if w != nil {
			o.out = w
		}
	}
}

// WithLogger sets the structured logger for per-size run events.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTelemetry attaches spans and run metrics. A nil provider disables both.
func WithTelemetry(p *observability.Provider) Option {
	return func(o *Orchestrator) { o.telemetry = p }
}

// WithClock overrides the clock for deterministic testing.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// New creates an orchestrator writing to sink.
func New(sink results.Sink, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		sink:           sink,
		gen:            cases.NewGenerator(nil),
		quadraticLimit: config.DefaultQuadraticLimit,
		maxDepth:       sorting.DefaultMaxDepth,
		out:            io.Discard,
		logger:         slog.Default().With("component", "experiment"),
		clock:          time.Now,
		newRunID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run measures alg on case c for every size in order and appends all rows in
// one batch. alg and c accept any label Parse and ParseCase accept; rows carry
// the canonical names. Rows are returned even when the append fails. A cancelled ctx
// stops the batch before the next size; rows measured so far are still
// appended.
func (o *Orchestrator) Run(ctx context.Context, alg sorting.Algorithm, c cases.Case, sizes []int) ([]results.Row, error) {
	alg, err := sorting.Parse(string(alg))
	if err != nil {
		return nil, err
	}
	c, err = cases.ParseCase(string(c))
	if err != nil {
		return nil, err
	}
	fn, err := sorting.For[int](alg, sorting.WithMaxDepth(o.maxDepth))
	if err != nil {
		return nil, err
	}

	runID := o.newRunID()
	logger := o.logger.With("run_id", runID, "algorithm", alg.String(), "case", c.String())
	fmt.Fprintf(o.out, "\nRunning %s - Case: %s\n", alg, c)

	rows := make([]results.Row, 0, len(sizes))
	var runErr error
	for _, n := range sizes {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		out := o.measure(ctx, fn, alg, c, n, runID)
		fmt.Fprintln(o.out, out.Line(n))
		logRun(ctx, logger, n, out)
		rows = append(rows, o.row(runID, alg, c, n, out))
	}

	if len(rows) > 0 {
		if err := o.sink.Append(context.WithoutCancel(ctx), rows); err != nil {
			logger.ErrorContext(ctx, "append results failed", "rows", len(rows), "error", err)
			return rows, errors.Join(runErr, fmt.Errorf("append results: %w", err))
		}
		fmt.Fprintf(o.out, "Results written/appended to %s.\n", describeSink(o.sink))
	}
	return rows, runErr
}

// RunPlan executes every run of plan in order. Plan-level seed and limits
// override the orchestrator's for the duration of the plan. Failures of
// individual runs are joined and do not stop later runs.
func (o *Orchestrator) RunPlan(ctx context.Context, plan *config.Plan) ([]results.Row, error) {
	po := *o
	if plan.Seed != nil {
		po.gen = cases.NewSeededGenerator(*plan.Seed)
	}
	if plan.QuadraticLimit > 0 {
		po.quadraticLimit = plan.QuadraticLimit
	}
	if plan.MaxDepth > 0 {
		po.maxDepth = plan.MaxDepth
	}
	if plan.Name != "" {
		po.logger = o.logger.With("plan", plan.Name)
	}

	var (
		all  []results.Row
		errs []error
	)
	for i, run := range plan.Runs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		alg, c, err := run.Resolve()
		if err != nil {
			errs = append(errs, fmt.Errorf("runs[%d]: %w", i, err))
			continue
		}
		sizes := run.Sizes
		if len(sizes) == 0 {
			sizes = DefaultSizes(alg)
		}
		rows, err := po.Run(ctx, alg, c, sizes)
		all = append(all, rows...)
		if err != nil {
			errs = append(errs, fmt.Errorf("runs[%d]: %w", i, err))
		}
	}
	return all, errors.Join(errs...)
}

func (o *Orchestrator) measure(ctx context.Context, fn sorting.Func[int], alg sorting.Algorithm, c cases.Case, n int, runID string) runner.Outcome {
	if alg.Quadratic() && n > o.quadraticLimit {
		out := runner.Skipped(SkipNote)
		o.telemetry.RecordRun(ctx, telemetryRun(alg, c, n, out))
		return out
	}

	attrs := observability.RunAttributes(alg.String(), c.String(), n, "")
	attrs = append(attrs, observability.AttrRunID.String(runID))
	ctx, span := o.telemetry.StartSpan(ctx, "sortbench.run", trace.WithAttributes(attrs...))
	defer span.End()

	var out runner.Outcome
	input, err := o.gen.Generate(alg, c, n)
	if err != nil {
		out = runner.Outcome{Status: runner.StatusOtherFailure, Detail: err.Error()}
	} else {
		out = runner.Measure(fn, input, runner.WithClock(o.clock))
	}

	span.SetAttributes(observability.AttrStatus.String(string(out.Status)))
	if out.Status.Failed() {
		span.SetStatus(codes.Error, out.Detail)
	}
	o.telemetry.RecordRun(ctx, telemetryRun(alg, c, n, out))
	return out
}

func (o *Orchestrator) row(runID string, alg sorting.Algorithm, c cases.Case, n int, out runner.Outcome) results.Row {
	r := results.Row{
		RunID:      runID,
		Algorithm:  alg.String(),
		Case:       c.String(),
		N:          n,
		Status:     string(out.Status),
		Notes:      out.Detail,
		RecordedAt: o.clock().UTC(),
	}
	if sec, ok := out.Seconds(); ok {
		r.TimeSec = &sec
	}
	if out.Status != runner.StatusSkipped {
		comps, swaps := out.Stats.Comparisons, out.Stats.Swaps
		r.Comparisons = &comps
		r.Swaps = &swaps
	}
	return r
}

func telemetryRun(alg sorting.Algorithm, c cases.Case, n int, out runner.Outcome) observability.Run {
	return observability.Run{
		Algorithm:   alg.String(),
		Case:        c.String(),
		N:           n,
		Status:      string(out.Status),
		Elapsed:     out.Elapsed,
		Comparisons: out.Stats.Comparisons,
		Swaps:       out.Stats.Swaps,
	}
}

func logRun(ctx context.Context, logger *slog.Logger, n int, out runner.Outcome) {
	attrs := []any{
		"n", n,
		"status", string(out.Status),
		"comparisons", out.Stats.Comparisons,
		"swaps", out.Stats.Swaps,
	}
	if out.Elapsed != nil {
		attrs = append(attrs, "elapsed", *out.Elapsed)
	}
	switch {
	case out.Status.Failed():
		logger.WarnContext(ctx, "run failed", append(attrs, "detail", out.Detail)...)
	case out.Status == runner.StatusSkipped:
		logger.InfoContext(ctx, "run skipped", attrs[:4]...)
	default:
		logger.InfoContext(ctx, "run finished", attrs...)
	}
}

func describeSink(s results.Sink) string {
	if p, ok := s.(interface{ Path() string }); ok {
		return p.Path()
	}
	return fmt.Sprintf("%T", s)
}
