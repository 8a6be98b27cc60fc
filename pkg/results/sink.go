package results

import (
	"context"
	"errors"
)

// ErrUnknownSink is returned by Open for an unsupported backend.
var ErrUnknownSink = errors.New("results: unknown sink")

// Sink is an append-only store of result rows. Reset is the only operation
// that removes rows.
type Sink interface {
	// Append adds rows after any existing ones, in order.
	Append(ctx context.Context, rows []Row) error
	// Reset removes every row, leaving an empty store with its schema.
	Reset(ctx context.Context) error
	// List returns all rows in insertion order.
	List(ctx context.Context) ([]Row, error)
	Close() error
}
