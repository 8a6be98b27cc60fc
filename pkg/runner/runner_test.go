package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
	"github.com/Mindburn-Labs/sortbench/pkg/stats"
)

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestMeasure_OK(t *testing.T) {
	input := []int{5, 3, 1, 4, 2}
	out := Measure(sorting.InsertionSort[int], input, WithClock(stepClock(250*time.Millisecond)))

	require.Equal(t, StatusOK, out.Status)
	require.NotNil(t, out.Elapsed)
	require.Equal(t, 250*time.Millisecond, *out.Elapsed)
	require.Equal(t, "0.250000", out.TimeString())
	require.Positive(t, out.Stats.Comparisons)
	require.Empty(t, out.Detail)
}

func TestMeasure_DoesNotMutateInput(t *testing.T) {
	input := []int{9, 8, 7, 6, 5, 4, 3, 2, 1}
	snapshot := append([]int(nil), input...)

	for _, alg := range sorting.All() {
		fn, err := sorting.For[int](alg)
		require.NoError(t, err)
		out := Measure(fn, input)
		require.Equal(t, StatusOK, out.Status, alg)
		require.Equal(t, snapshot, input, alg)
	}
}

func TestMeasure_Incorrect(t *testing.T) {
	reverse := func(data []int, c *stats.Counter) {
		for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
			c.Compare()
			data[i], data[j] = data[j], data[i]
			c.Swap()
		}
	}

	out := Measure(reverse, []int{1, 2, 3, 4})
	require.Equal(t, StatusIncorrect, out.Status)
	require.Nil(t, out.Elapsed)
	require.Empty(t, out.TimeString())
	require.Equal(t, DetailIncorrect, out.Detail)
	require.Equal(t, int64(2), out.Stats.Swaps)
	require.True(t, out.Status.Failed())
}

func TestMeasure_RuntimeFault(t *testing.T) {
	faulty := func(data []int, c *stats.Counter) {
		c.Compare()
		_ = data[len(data)+1]
	}

	input := make([]int, 10)
	var out Outcome
	require.NotPanics(t, func() { out = Measure(faulty, input) })

	require.Equal(t, StatusOtherFailure, out.Status)
	require.Nil(t, out.Elapsed)
	require.Contains(t, out.Detail, "index out of range")
	require.Equal(t, int64(1), out.Stats.Comparisons)
}

func TestMeasure_PanicValues(t *testing.T) {
	cases := map[string]struct {
		value any
		want  string
	}{
		"error":  {errors.New("boom"), "boom"},
		"string": {"bad state", "bad state"},
		"int":    {42, "int: 42"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out := Measure(func([]int, *stats.Counter) { panic(tc.value) }, []int{1})
			require.Equal(t, StatusOtherFailure, out.Status)
			require.Equal(t, tc.want, out.Detail)
		})
	}
}

func TestMeasure_NilFunc(t *testing.T) {
	out := Measure[int](nil, []int{1, 2})
	require.Equal(t, StatusOtherFailure, out.Status)
	require.Nil(t, out.Elapsed)
}

func TestMeasure_RecursionFailure(t *testing.T) {
	fn, err := sorting.For[int](sorting.Quick, sorting.WithMaxDepth(50))
	require.NoError(t, err)

	input := make([]int, 1000)
	for i := range input {
		input[i] = i
	}

	out := Measure(fn, input)
	require.Equal(t, StatusRecursionFailure, out.Status)
	require.Nil(t, out.Elapsed)
	require.Contains(t, out.Detail, "recursion depth limit 50")
	require.Positive(t, out.Stats.Comparisons)
}

func TestMeasure_EmptyInput(t *testing.T) {
	for _, alg := range sorting.All() {
		fn, err := sorting.For[int](alg)
		require.NoError(t, err)
		out := Measure(fn, []int{})
		require.Equal(t, StatusOK, out.Status, alg)
		require.Zero(t, out.Stats.Comparisons, alg)
	}
}

func TestSkipped(t *testing.T) {
	out := Skipped("too large")
	require.Equal(t, StatusSkipped, out.Status)
	require.Nil(t, out.Elapsed)
	require.False(t, out.Status.Failed())
	_, ok := out.Seconds()
	require.False(t, ok)
}

func TestOutcome_Line(t *testing.T) {
	elapsed := 1500 * time.Microsecond
	ok := Outcome{Elapsed: &elapsed, Stats: stats.Counter{Comparisons: 99, Swaps: 0}, Status: StatusOK}
	require.Equal(t, "For N=100: status=OK, time=0.001500, comps=99, swaps=0", ok.Line(100))

	failed := Outcome{Stats: stats.Counter{Comparisons: 7}, Status: StatusRecursionFailure}
	require.Equal(t, "For N=5: status=RECURSION_FAILURE, time=, comps=7, swaps=0", failed.Line(5))

	require.Equal(t, "For N=50000: SKIPPED: quadratic algorithm N too large",
		Skipped("SKIPPED: quadratic algorithm N too large").Line(50000))
}
