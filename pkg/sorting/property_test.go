package sorting

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Mindburn-Labs/sortbench/pkg/stats"
)

// TestSorts_Permutation checks that every algorithm returns a non-decreasing
// permutation of its input.
func TestSorts_Permutation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, alg := range All() {
		fn, err := For[int](alg)
		if err != nil {
			t.Fatal(err)
		}
		properties.Property(string(alg)+" sorts to a permutation", prop.ForAll(
			func(in []int) bool {
				got := slices.Clone(in)
				var c stats.Counter
				fn(got, &c)

				want := slices.Clone(in)
				slices.Sort(want)
				return slices.Equal(got, want)
			},
			gen.SliceOf(gen.IntRange(-50, 50)),
		))
	}

	properties.TestingRun(t)
}

// TestSorts_Idempotent checks that sorting an already sorted slice leaves it
// unchanged.
func TestSorts_Idempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	for _, alg := range All() {
		fn, err := For[int](alg)
		if err != nil {
			t.Fatal(err)
		}
		properties.Property(string(alg)+" is idempotent", prop.ForAll(
			func(in []int) bool {
				once := slices.Clone(in)
				var c stats.Counter
				fn(once, &c)
				twice := slices.Clone(once)
				fn(twice, &c)
				return slices.Equal(once, twice)
			},
			gen.SliceOf(gen.Int()),
		))
	}

	properties.TestingRun(t)
}

// TestInsertionSort_ComparisonBound checks comparisons never exceed
// swaps + N - 1: each key stops after at most one non-shifting comparison.
func TestInsertionSort_ComparisonBound(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("comparisons <= swaps + n - 1", prop.ForAll(
		func(in []int) bool {
			var c stats.Counter
			InsertionSort(slices.Clone(in), &c)
			if len(in) == 0 {
				return c.Comparisons == 0
			}
			return c.Comparisons <= c.Swaps+int64(len(in)-1)
		},
		gen.SliceOf(gen.IntRange(0, 20)),
	))

	properties.TestingRun(t)
}
