package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/Mindburn-Labs/sortbench/pkg/archive"
	"github.com/Mindburn-Labs/sortbench/pkg/report"
	"github.com/Mindburn-Labs/sortbench/pkg/results"
)

// runResetCmd implements `sortbench reset`.
func runResetCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("reset", flag.ContinueOnError)
	cmd.SetOutput(stderr)
	if err := cmd.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	a, err := newApp(ctx, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer a.close(ctx)

	if err := resetResults(ctx, a, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func resetResults(ctx context.Context, a *app, stdout io.Writer) error {
	if err := a.sink.Reset(ctx); err != nil {
		return fmt.Errorf("reset results: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "%s has been cleared and reset with headers.\n\n", a.sinkLabel())
	return nil
}

// runReportCmd implements `sortbench report`.
func runReportCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("report", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var where, format string
	cmd.StringVar(&where, "where", "", `CEL filter over row, e.g. 'row.status == "OK" && row.n >= 1000'`)
	cmd.StringVar(&format, "format", "text", "Output format: text, markdown, json or html")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	f, err := report.ParseFormat(format)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: --format: %v\n", err)
		return 2
	}
	var filter *results.Filter
	if where != "" {
		if filter, err = results.NewFilter(where); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: --where: %v\n", err)
			return 2
		}
	}

	ctx := context.Background()
	a, err := newApp(ctx, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer a.close(ctx)

	rows, err := a.sink.List(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: list results: %v\n", err)
		return 1
	}
	if filter != nil {
		if rows, err = filter.Apply(rows); err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if err := report.Write(stdout, rows, f); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runArchiveCmd implements `sortbench archive`. Without flags it snapshots
// the CSV results file and prints the digest; --get writes a snapshot to
// stdout.
func runArchiveCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("archive", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var get string
	cmd.StringVar(&get, "get", "", "Print the snapshot with this sha256 digest")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	a, err := newApp(ctx, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer a.close(ctx)

	store, err := archive.NewStoreFromEnv(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if get != "" {
		data, err := store.Get(ctx, get)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		_, _ = stdout.Write(data)
		return 0
	}

	if a.cfg.Sink != string(results.KindCSV) {
		_, _ = fmt.Fprintf(stderr, "Error: archive requires the csv sink, configured sink is %q\n", a.cfg.Sink)
		return 2
	}
	id, err := archive.SnapshotFile(ctx, store, a.cfg.ResultsPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	a.logger.InfoContext(ctx, "results archived", "path", a.cfg.ResultsPath, "digest", id)
	_, _ = fmt.Fprintln(stdout, id)
	return 0
}
