package cases

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
)

func TestBestCase_AscendingForAll(t *testing.T) {
	for _, alg := range sorting.All() {
		require.Equal(t, []int{0, 1, 2, 3, 4}, BestCase(alg, 5), alg)
	}
}

func TestWorstCase_AlgorithmAware(t *testing.T) {
	n := 100
	quick := WorstCase(sorting.Quick, n)
	require.Len(t, quick, n)
	for i, v := range quick {
		require.Equal(t, i, v)
	}

	for _, alg := range []sorting.Algorithm{sorting.Bubble, sorting.Insertion, sorting.Merge} {
		worst := WorstCase(alg, n)
		require.Len(t, worst, n, alg)
		require.Equal(t, n, worst[0], alg)
		require.Equal(t, 1, worst[n-1], alg)
		for i := 1; i < n; i++ {
			require.Less(t, worst[i], worst[i-1], alg)
		}
	}
}

func TestAverageCase_IsPermutation(t *testing.T) {
	got := AverageCase(500)
	require.Len(t, got, 500)
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	require.Equal(t, ascending(500), sorted)
}

func TestGenerator_Seeded(t *testing.T) {
	a, err := NewSeededGenerator(42).Generate(sorting.Merge, Average, 64)
	require.NoError(t, err)
	b, err := NewSeededGenerator(42).Generate(sorting.Merge, Average, 64)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.NotEqual(t, ascending(64), a)
}

func TestGenerator_Dispatch(t *testing.T) {
	g := NewGenerator(nil)

	best, err := g.Generate(sorting.Bubble, Best, 3)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, best)

	worst, err := g.Generate(sorting.Bubble, Worst, 3)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2, 1}, worst)

	avg, err := g.Generate(sorting.Quick, Average, 10)
	require.NoError(t, err)
	require.Len(t, avg, 10)

	empty, err := g.Generate(sorting.Quick, Worst, 0)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestGenerator_Errors(t *testing.T) {
	g := NewGenerator(nil)

	_, err := g.Generate(sorting.Bubble, Best, -1)
	require.ErrorIs(t, err, ErrNegativeSize)

	_, err = g.Generate(sorting.Bubble, Case("Typical Case"), 10)
	require.ErrorIs(t, err, ErrUnknownCase)
}

func TestParseCase(t *testing.T) {
	for in, want := range map[string]Case{
		"Best Case": Best,
		"best":      Best,
		"1":         Best,
		"AVERAGE":   Average,
		"2":         Average,
		"worst":     Worst,
		"3":         Worst,
	} {
		got, err := ParseCase(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseCase("4")
	require.ErrorIs(t, err, ErrUnknownCase)
}
