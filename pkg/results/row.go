// Package results defines benchmark result rows and the append-only sinks
// they are persisted to.
package results

import (
	"fmt"
	"strconv"
	"time"
)

// Header is the fixed column schema of every tabular sink.
var Header = []string{"algorithm", "case", "n", "time_sec", "comparisons", "swaps", "status", "notes"}

// Row is one benchmark result. Nil pointers are written as empty fields.
type Row struct {
	RunID       string    `json:"run_id,omitempty"`
	Algorithm   string    `json:"algorithm"`
	Case        string    `json:"case"`
	N           int       `json:"n"`
	TimeSec     *float64  `json:"time_sec"`
	Comparisons *int64    `json:"comparisons"`
	Swaps       *int64    `json:"swaps"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Record renders the row in Header order.
func (r Row) Record() []string {
	return []string{
		r.Algorithm,
		r.Case,
		strconv.Itoa(r.N),
		formatSeconds(r.TimeSec),
		formatCount(r.Comparisons),
		formatCount(r.Swaps),
		r.Status,
		r.Notes,
	}
}

// ParseRecord is the inverse of Record.
func ParseRecord(rec []string) (Row, error) {
	if len(rec) != len(Header) {
		return Row{}, fmt.Errorf("results: record has %d fields, want %d", len(rec), len(Header))
	}
	n, err := strconv.Atoi(rec[2])
	if err != nil {
		return Row{}, fmt.Errorf("results: parse n %q: %w", rec[2], err)
	}
	row := Row{
		Algorithm: rec[0],
		Case:      rec[1],
		N:         n,
		Status:    rec[6],
		Notes:     rec[7],
	}
	if rec[3] != "" {
		sec, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return Row{}, fmt.Errorf("results: parse time_sec %q: %w", rec[3], err)
		}
		row.TimeSec = &sec
	}
	if row.Comparisons, err = parseCount(rec[4]); err != nil {
		return Row{}, fmt.Errorf("results: parse comparisons: %w", err)
	}
	if row.Swaps, err = parseCount(rec[5]); err != nil {
		return Row{}, fmt.Errorf("results: parse swaps: %w", err)
	}
	return row, nil
}

// Fields exposes the row as a map keyed by column name. Nil fields are
// omitted.
func (r Row) Fields() map[string]any {
	m := map[string]any{
		"algorithm": r.Algorithm,
		"case":      r.Case,
		"n":         int64(r.N),
		"status":    r.Status,
		"notes":     r.Notes,
	}
	if r.RunID != "" {
		m["run_id"] = r.RunID
	}
	if r.TimeSec != nil {
		m["time_sec"] = *r.TimeSec
	}
	if r.Comparisons != nil {
		m["comparisons"] = *r.Comparisons
	}
	if r.Swaps != nil {
		m["swaps"] = *r.Swaps
	}
	return m
}

func formatSeconds(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}

func formatCount(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func parseCount(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
