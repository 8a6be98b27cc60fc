package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const selectRows = `
	SELECT run_id, algorithm, case_label, n, time_sec, comparisons, swaps, status, notes, recorded_at
	FROM results
	ORDER BY id`

// insertRows writes rows in a single transaction using the dialect's insert
// statement.
func insertRows(ctx context.Context, db *sql.DB, insert string, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, r := range rows {
		_, err := tx.ExecContext(ctx, insert,
			r.RunID, r.Algorithm, r.Case, r.N,
			nullable(r.TimeSec), nullable(r.Comparisons), nullable(r.Swaps),
			r.Status, r.Notes, r.RecordedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s/%s/%d: %w", r.Algorithm, r.Case, r.N, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func queryRows(ctx context.Context, db *sql.DB) ([]Row, error) {
	rs, err := db.QueryContext(ctx, selectRows)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rs.Close() //nolint:errcheck // read-only

	var out []Row
	for rs.Next() {
		var (
			r           Row
			sec         sql.NullFloat64
			comps, swps sql.NullInt64
			recorded    string
		)
		if err := rs.Scan(&r.RunID, &r.Algorithm, &r.Case, &r.N, &sec, &comps, &swps, &r.Status, &r.Notes, &recorded); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if sec.Valid {
			r.TimeSec = &sec.Float64
		}
		if comps.Valid {
			r.Comparisons = &comps.Int64
		}
		if swps.Valid {
			r.Swaps = &swps.Int64
		}
		if recorded != "" {
			if t, err := time.Parse(time.RFC3339Nano, recorded); err == nil {
				r.RecordedAt = t
			}
		}
		out = append(out, r)
	}
	return out, rs.Err()
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
