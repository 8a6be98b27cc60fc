package runner

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Mindburn-Labs/sortbench/pkg/sorting"
	"github.com/Mindburn-Labs/sortbench/pkg/stats"
)

// DetailIncorrect is the failure detail of a run whose output did not match
// the reference sort.
const DetailIncorrect = "result incorrect"

// Option configures Measure.
type Option func(*settings)

type settings struct {
	clock func() time.Time
}

// WithClock overrides the clock for deterministic testing.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Measure runs fn over a private copy of input with a fresh counter.
//
// The caller's slice is never modified and a panic inside fn never escapes:
// a *sorting.DepthError becomes StatusRecursionFailure and anything else
// StatusOtherFailure. Counts accumulated before a fault are kept.
func Measure[T cmp.Ordered](fn sorting.Func[T], input []T, opts ...Option) (out Outcome) {
	cfg := settings{clock: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	work := slices.Clone(input)
	counter := &stats.Counter{}

	defer func() {
		if r := recover(); r != nil {
			out = classifyPanic(r, counter.Snapshot())
		}
	}()

	start := cfg.clock()
	fn(work, counter)
	end := cfg.clock()

	reference := slices.Clone(input)
	slices.Sort(reference)
	if !slices.Equal(work, reference) {
		return Outcome{
			Stats:  counter.Snapshot(),
			Status: StatusIncorrect,
			Detail: DetailIncorrect,
		}
	}

	elapsed := end.Sub(start)
	return Outcome{
		Elapsed: &elapsed,
		Stats:   counter.Snapshot(),
		Status:  StatusOK,
	}
}

func classifyPanic(r any, counts stats.Counter) Outcome {
	if err, ok := r.(error); ok && errors.Is(err, sorting.ErrDepthExceeded) {
		return Outcome{
			Stats:  counts,
			Status: StatusRecursionFailure,
			Detail: err.Error(),
		}
	}
	return Outcome{
		Stats:  counts,
		Status: StatusOtherFailure,
		Detail: describe(r),
	}
}

func describe(r any) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprintf("%T: %v", v, v)
	}
}
