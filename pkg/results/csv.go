package results

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// DefaultCSVPath is the results file used when none is configured.
const DefaultCSVPath = "results.csv"

// CSVSink appends rows to a CSV file with the Header column schema. The
// header is written when the file is created or found empty.
type CSVSink struct {
	path string
	mu   sync.Mutex
}

func NewCSVSink(path string) *CSVSink {
	if path == "" {
		path = DefaultCSVPath
	}
	return &CSVSink{path: path}
}

// Path returns the file the sink writes to.
func (s *CSVSink) Path() string { return s.path }

func (s *CSVSink) Append(_ context.Context, rows []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureParentDir(s.path); err != nil {
		return err
	}
	needHeader := true
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		needHeader = false
	}

	//nolint:gosec // results file is meant to be shared
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if needHeader {
		_ = w.Write(Header)
	}
	for _, r := range rows {
		_ = w.Write(r.Record())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return f.Close()
}

func (s *CSVSink) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureParentDir(s.path); err != nil {
		return err
	}
	//nolint:gosec // results file is meant to be shared
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("truncate %s: %w", s.path, err)
	}
	w := csv.NewWriter(f)
	_ = w.Write(Header)
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header %s: %w", s.path, err)
	}
	return f.Close()
}

func (s *CSVSink) List(_ context.Context) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}
		if slices.Equal(rec, Header) {
			continue
		}
		row, err := ParseRecord(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *CSVSink) Close() error { return nil }

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	//nolint:gosec // results directory is meant to be shared
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
