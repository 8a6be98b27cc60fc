// Package sorting provides the four instrumented comparison sorts measured by
// sortbench. Each sort works in place, ascending, and reports every
// comparison and element relocation to a stats.Counter.
package sorting

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/Mindburn-Labs/sortbench/pkg/stats"
)

// ErrUnknownAlgorithm is returned when an algorithm identifier does not name
// one of the four supported sorts.
var ErrUnknownAlgorithm = errors.New("sorting: unknown algorithm")

// Func is the signature shared by all instrumented sorts.
type Func[T cmp.Ordered] func(data []T, c *stats.Counter)

// Algorithm identifies one of the supported sorts. The set is closed.
type Algorithm string

const (
	Bubble    Algorithm = "Bubble Sort"
	Merge     Algorithm = "Merge Sort"
	Quick     Algorithm = "Quick Sort"
	Insertion Algorithm = "Insertion Sort"
)

// All returns the algorithms in menu order.
func All() []Algorithm {
	return []Algorithm{Bubble, Merge, Quick, Insertion}
}

// Key returns the menu key ("1".."4") of the algorithm.
func (a Algorithm) Key() string {
	for i, alg := range All() {
		if alg == a {
			return fmt.Sprintf("%d", i+1)
		}
	}
	return ""
}

// Short returns the lower-case short name used on the command line.
func (a Algorithm) Short() string {
	return strings.ToLower(strings.TrimSuffix(string(a), " Sort"))
}

// Quadratic reports whether the algorithm runs in O(N²) time on its average
// case, which subjects it to the orchestrator's size limit.
func (a Algorithm) Quadratic() bool {
	return a == Bubble || a == Insertion
}

func (a Algorithm) String() string { return string(a) }

// Parse resolves a display name ("Quick Sort"), short name ("quick") or menu
// key ("3") into an Algorithm.
func Parse(s string) (Algorithm, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for _, alg := range All() {
		if in == strings.ToLower(string(alg)) || in == alg.Short() || in == alg.Key() {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// For returns the instrumented sort for alg. Options only affect the
// recursive algorithms.
func For[T cmp.Ordered](alg Algorithm, opts ...Option) (Func[T], error) {
	o := newOptions(opts)
	switch alg {
	case Bubble:
		return BubbleSort[T], nil
	case Insertion:
		return InsertionSort[T], nil
	case Merge:
		return func(data []T, c *stats.Counter) {
			mergeSortLimited(data, c, o.maxDepth)
		}, nil
	case Quick:
		return func(data []T, c *stats.Counter) {
			quickSortLimited(data, c, o.maxDepth)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
	}
}
