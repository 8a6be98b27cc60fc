// Package runner times a single instrumented sort, verifies its output
// against a reference sort and classifies the result.
package runner

import (
	"fmt"
	"time"

	"github.com/Mindburn-Labs/sortbench/pkg/stats"
)

// Status classifies a measured run. Values are stable; they are written to
// result sinks verbatim.
type Status string

const (
	StatusOK               Status = "OK"
	StatusIncorrect        Status = "INCORRECT"
	StatusRecursionFailure Status = "RECURSION_FAILURE"
	StatusOtherFailure     Status = "OTHER_FAILURE"
	StatusSkipped          Status = "SKIPPED"
)

// Failed reports whether the run was attempted and did not succeed.
func (s Status) Failed() bool {
	switch s {
	case StatusIncorrect, StatusRecursionFailure, StatusOtherFailure:
		return true
	default:
		return false
	}
}

// Outcome is the immutable result of one measured run.
type Outcome struct {
	// Elapsed is nil unless Status is StatusOK.
	Elapsed *time.Duration `json:"elapsed,omitempty"`
	Stats   stats.Counter  `json:"stats"`
	Status  Status         `json:"status"`
	// Detail describes a failure or skip.
	Detail string `json:"detail,omitempty"`
}

// Skipped returns the outcome of a run that was never attempted.
func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Detail: reason}
}

// Seconds returns the elapsed time in seconds, if any.
func (o Outcome) Seconds() (float64, bool) {
	if o.Elapsed == nil {
		return 0, false
	}
	return o.Elapsed.Seconds(), true
}

// TimeString renders the elapsed seconds with microsecond precision, or the
// empty string when no timing exists.
func (o Outcome) TimeString() string {
	sec, ok := o.Seconds()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.6f", sec)
}

// Line renders the operator status line for a run over n elements.
func (o Outcome) Line(n int) string {
	if o.Status == StatusSkipped {
		return fmt.Sprintf("For N=%d: %s", n, o.Detail)
	}
	return fmt.Sprintf("For N=%d: status=%s, time=%s, comps=%d, swaps=%d",
		n, o.Status, o.TimeString(), o.Stats.Comparisons, o.Stats.Swaps)
}
