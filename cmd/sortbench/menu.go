package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Mindburn-Labs/sortbench/pkg/cases"
	"github.com/Mindburn-Labs/sortbench/pkg/experiment"
	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
)

const (
	menuReset = "5"
	menuExit  = "6"
	caseBack  = "4"
)

// runMenuCmd implements the interactive menu. End of input exits like
// choosing Exit.
func runMenuCmd(stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signalContext()
	defer stop()

	a, err := newApp(ctx, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer a.close(ctx)

	m := &menu{app: a, in: bufio.NewScanner(stdin), out: stdout}
	if err := m.main(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type menu struct {
	app *app
	in  *bufio.Scanner
	out io.Writer
}

// prompt prints label and reads one trimmed line. ok is false at end of
// input.
func (m *menu) prompt(label string) (string, bool) {
	_, _ = fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		_, _ = fmt.Fprintln(m.out)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) main(ctx context.Context) error {
	fmt.Fprintln(m.out, "Welcome to the test suite of selected sorting algorithms!")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprintln(m.out, "\nMain Menu")
		fmt.Fprintln(m.out, "-------------------------")
		for _, alg := range sorting.All() {
			fmt.Fprintf(m.out, "%s. %s\n", alg.Key(), alg)
		}
		fmt.Fprintf(m.out, "%s. Clear results ** WILL REMOVE OLD DATA THAT WAS COLLECTED **\n", menuReset)
		fmt.Fprintf(m.out, "%s. Exit\n", menuExit)

		choice, ok := m.prompt("Select an option (1-6): ")
		if !ok || choice == menuExit {
			fmt.Fprintln(m.out, "Bye!")
			return nil
		}
		if choice == menuReset {
			if err := resetResults(ctx, m.app, m.out); err != nil {
				return err
			}
			continue
		}
		alg, err := menuAlgorithm(choice)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid choice. Try again.")
			continue
		}
		if done := m.cases(ctx, alg); done {
			fmt.Fprintln(m.out, "Bye!")
			return nil
		}
	}
}

// cases runs the case menu for alg. done reports end of input.
func (m *menu) cases(ctx context.Context, alg sorting.Algorithm) (done bool) {
	for {
		fmt.Fprintf(m.out, "\nCase Scenarios for %s\n", alg)
		fmt.Fprintln(m.out, "---------------")
		for _, c := range cases.All() {
			fmt.Fprintf(m.out, "%s. %s\n", c.Key(), c)
		}
		fmt.Fprintf(m.out, "%s. Exit to main menu\n", caseBack)

		choice, ok := m.prompt("Select the case (1-4): ")
		if !ok {
			return true
		}
		if choice == caseBack {
			return false
		}
		c, err := menuCase(choice)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid choice. Try again.")
			continue
		}

		sizes, ok := m.sizes(alg)
		if !ok {
			return true
		}
		if _, err := m.app.orchestrator(m.out).Run(ctx, alg, c, sizes); err != nil {
			// The batch was measured; report and stay in the menu.
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

func (m *menu) sizes(alg sorting.Algorithm) ([]int, bool) {
	defaults := experiment.DefaultSizes(alg)
	fmt.Fprintf(m.out, "\nDefault N values for %s: %v\n", alg, defaults)

	answer, ok := m.prompt("Use default N values? (Y/N): ")
	if !ok {
		return nil, false
	}
	switch strings.ToLower(answer) {
	case "", "y", "yes":
		return defaults, true
	}

	raw, ok := m.prompt("Enter comma-separated N values (e.g. 100,1000,10000): ")
	if !ok {
		return nil, false
	}
	sizes, parsed := experiment.ParseSizes(raw, alg)
	if !parsed {
		if strings.Trim(raw, " ,") == "" {
			fmt.Fprintln(m.out, "No valid N provided. Using defaults.")
		} else {
			fmt.Fprintln(m.out, "Invalid input. Using defaults.")
		}
	}
	return sizes, true
}

// menuAlgorithm accepts only the numeric menu keys.
func menuAlgorithm(choice string) (sorting.Algorithm, error) {
	for _, alg := range sorting.All() {
		if alg.Key() == choice {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", sorting.ErrUnknownAlgorithm, choice)
}

func menuCase(choice string) (cases.Case, error) {
	for _, c := range cases.All() {
		if c.Key() == choice {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", cases.ErrUnknownCase, choice)
}
