package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/Mindburn-Labs/sortbench/pkg/cases"
	"github.com/Mindburn-Labs/sortbench/pkg/config"
	"github.com/Mindburn-Labs/sortbench/pkg/experiment"
	"github.com/Mindburn-Labs/sortbench/pkg/results"
	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
)

// runRunCmd implements `sortbench run`.
//
// Exit codes:
//
//	0 = all sizes recorded (failed sorts are recorded, not errors)
//	1 = results could not be recorded
//	2 = usage error
func runRunCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("run", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		algName    string
		caseName   string
		sizesRaw   string
		jsonOutput bool
	)
	cmd.StringVar(&algName, "algorithm", "", "Algorithm: bubble, merge, quick, insertion or 1-4 (REQUIRED)")
	cmd.StringVar(&caseName, "case", "", "Case: best, average, worst or 1-3 (REQUIRED)")
	cmd.StringVar(&sizesRaw, "sizes", "", "Comma-separated sizes; malformed lists fall back to the per-algorithm defaults")
	cmd.BoolVar(&jsonOutput, "json", false, "Print recorded rows as JSON instead of status lines")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	alg, err := sorting.Parse(algName)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: --algorithm: %v\n", err)
		return 2
	}
	c, err := cases.ParseCase(caseName)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: --case: %v\n", err)
		return 2
	}

	sizes := experiment.DefaultSizes(alg)
	if sizesRaw != "" {
		var ok bool
		if sizes, ok = experiment.ParseSizes(sizesRaw, alg); !ok {
			_, _ = fmt.Fprintf(stderr, "Warning: --sizes: invalid size list %q, using defaults %v\n", sizesRaw, sizes)
		}
	}

	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer a.close(ctx)

	out := stdout
	if jsonOutput {
		out = io.Discard
	}
	rows, err := a.orchestrator(out).Run(ctx, alg, c, sizes)
	if jsonOutput {
		if encErr := writeJSON(stdout, rows); encErr != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", encErr)
			return 1
		}
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runPlanCmd implements `sortbench plan <file.yaml>`.
func runPlanCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("plan", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var jsonOutput bool
	cmd.BoolVar(&jsonOutput, "json", false, "Print recorded rows as JSON instead of status lines")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if cmd.NArg() != 1 {
		_, _ = fmt.Fprintln(stderr, "Usage: sortbench plan [--json] <file.yaml>")
		return 2
	}

	plan, err := config.LoadPlan(cmd.Arg(0))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer a.close(ctx)

	out := stdout
	if jsonOutput {
		out = io.Discard
	}
	rows, err := a.orchestrator(out).RunPlan(ctx, plan)
	if jsonOutput {
		if encErr := writeJSON(stdout, rows); encErr != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", encErr)
			return 1
		}
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func writeJSON(w io.Writer, rows []results.Row) error {
	if rows == nil {
		rows = []results.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
