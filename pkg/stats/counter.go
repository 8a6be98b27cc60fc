// Package stats holds the instrumentation counters threaded through every
// instrumented sort.
package stats

import "fmt"

// Counter accumulates comparison and swap counts for a single sort call.
// A Counter is owned by exactly one measured run. The counts only ever grow.
type Counter struct {
	Comparisons int64 `json:"comparisons"`
	Swaps       int64 `json:"swaps"`
}

// Compare records one evaluated comparison between two elements.
func (c *Counter) Compare() {
	c.Comparisons++
}

// Swap records one element relocation. Shifts count as swaps as well.
func (c *Counter) Swap() {
	c.Swaps++
}

// Snapshot returns a copy of the current counts.
func (c *Counter) Snapshot() Counter {
	return *c
}

func (c Counter) String() string {
	return fmt.Sprintf("comps=%d swaps=%d", c.Comparisons, c.Swaps)
}
