package results

import (
	"context"
	"sync"
)

// MemorySink keeps rows in process memory.
type MemorySink struct {
	mu      sync.Mutex
	rows    []Row
	appends int
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(_ context.Context, rows []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
	s.appends++
	return nil
}

func (s *MemorySink) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	return nil
}

func (s *MemorySink) List(_ context.Context) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

// Appends returns how many Append calls the sink has received.
func (s *MemorySink) Appends() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appends
}

func (s *MemorySink) Close() error { return nil }
