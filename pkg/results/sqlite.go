package results

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteSink stores rows in a local SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	s, err := NewSQLiteSink(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLiteSink(db *sql.DB) (*SQLiteSink, error) {
	s := &SQLiteSink{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return s, nil
}

func (s *SQLiteSink) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL DEFAULT '',
		algorithm TEXT NOT NULL,
		case_label TEXT NOT NULL,
		n INTEGER NOT NULL,
		time_sec REAL,
		comparisons INTEGER,
		swaps INTEGER,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	);`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

func (s *SQLiteSink) Append(ctx context.Context, rows []Row) error {
	return insertRows(ctx, s.db, `
		INSERT INTO results (run_id, algorithm, case_label, n, time_sec, comparisons, swaps, status, notes, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, rows)
}

func (s *SQLiteSink) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM results"); err != nil {
		return fmt.Errorf("reset sqlite: %w", err)
	}
	return nil
}

func (s *SQLiteSink) List(ctx context.Context) ([]Row, error) {
	return queryRows(ctx, s.db)
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
