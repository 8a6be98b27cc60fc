package sorting

import (
	"errors"
	"fmt"
)

// DefaultMaxDepth bounds recursion for merge and quick sort. Go aborts the
// whole process when a goroutine stack is exhausted, so depth is tracked
// explicitly and overflow is reported as a recoverable panic instead.
const DefaultMaxDepth = 300000

// ErrDepthExceeded is the sentinel wrapped by every DepthError.
var ErrDepthExceeded = errors.New("sorting: recursion depth exceeded")

// DepthError is the panic value raised when a recursive sort goes deeper
// than its configured limit.
type DepthError struct {
	Algorithm Algorithm
	Limit     int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("sorting: %s exceeded recursion depth limit %d", e.Algorithm, e.Limit)
}

func (e *DepthError) Unwrap() error { return ErrDepthExceeded }

// Option configures the sorts returned by For.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth sets the recursion limit. Non-positive values keep the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
