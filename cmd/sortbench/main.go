package main

import (
	"fmt"
	"io"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// Run is the entrypoint for testing
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		return runMenuCmd(stdin, stdout, stderr)
	}

	switch args[1] {
	case "menu":
		return runMenuCmd(stdin, stdout, stderr)
	case "run":
		return runRunCmd(args[2:], stdout, stderr)
	case "plan":
		return runPlanCmd(args[2:], stdout, stderr)
	case "reset":
		return runResetCmd(args[2:], stdout, stderr)
	case "report":
		return runReportCmd(args[2:], stdout, stderr)
	case "archive":
		return runArchiveCmd(args[2:], stdout, stderr)
	case "version", "--version":
		_, _ = fmt.Fprintf(stdout, "sortbench %s\n", version)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "sortbench %s\n", version)
	fmt.Fprintln(w, "Instrumented benchmarks for bubble, merge, quick and insertion sort.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  sortbench [command] [flags]")
	fmt.Fprintln(w, "")

	printSection(w, "BENCHMARKS")
	printCommand(w, "menu", "Interactive menu (default)")
	printCommand(w, "run", "Run one algorithm and case (--algorithm, --case, --sizes, --json)")
	printCommand(w, "plan", "Run a YAML experiment plan (plan <file.yaml>)")

	printSection(w, "RESULTS")
	printCommand(w, "report", "Print recorded results (--where <cel>, --format text|markdown|json|html)")
	printCommand(w, "reset", "Clear results, keeping the header")
	printCommand(w, "archive", "Snapshot the results file (--get <digest> to restore)")

	printSection(w, "UTILITIES")
	printCommand(w, "version", "Show version information")
	printCommand(w, "help", "Show this help")
	fmt.Fprintln(w, "")
}

func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "%s:\n", title)
}

func printCommand(w io.Writer, name, desc string) {
	fmt.Fprintf(w, "  %-10s %s\n", name, desc)
}
