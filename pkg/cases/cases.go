// Package cases generates benchmark inputs for the best, average and worst
// case of each algorithm.
//
// "Worst case" depends on the algorithm: first-element-pivot quicksort
// degrades on input that is already ascending, while bubble, insertion and
// merge sort do the most work on descending input.
package cases

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
)

var (
	// ErrUnknownCase is returned for a case label outside the fixed three.
	ErrUnknownCase = errors.New("cases: unknown case")
	// ErrNegativeSize is returned when asked for an input of negative length.
	ErrNegativeSize = errors.New("cases: size must not be negative")
)

// Case labels one of the three input distributions.
type Case string

const (
	Best    Case = "Best Case"
	Average Case = "Average Case"
	Worst   Case = "Worst Case"
)

// All returns the cases in menu order.
func All() []Case {
	return []Case{Best, Average, Worst}
}

// Key returns the menu key ("1".."3") of the case.
func (c Case) Key() string {
	for i, cs := range All() {
		if cs == c {
			return fmt.Sprintf("%d", i+1)
		}
	}
	return ""
}

// Short returns the lower-case short name used on the command line.
func (c Case) Short() string {
	return strings.ToLower(strings.TrimSuffix(string(c), " Case"))
}

func (c Case) String() string { return string(c) }

// ParseCase resolves a label ("Worst Case"), short name ("worst") or menu key
// ("3") into a Case.
func ParseCase(s string) (Case, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for _, c := range All() {
		if in == strings.ToLower(string(c)) || in == c.Short() || in == c.Key() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCase, s)
}

// BestCase returns 0..n-1 ascending for every algorithm.
func BestCase(_ sorting.Algorithm, n int) []int {
	return ascending(n)
}

// WorstCase returns 0..n-1 ascending for quicksort and n..1 descending for
// the other algorithms.
func WorstCase(alg sorting.Algorithm, n int) []int {
	if alg == sorting.Quick {
		return ascending(n)
	}
	return descending(n)
}

// AverageCase returns a uniformly random permutation of 0..n-1 drawn from the
// process-wide random source.
func AverageCase(n int) []int {
	out := ascending(n)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func ascending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func descending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - i
	}
	return out
}
