package results

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresSink stores rows in PostgreSQL. Call Init before first use.
type PostgresSink struct {
	db *sql.DB
}

// OpenPostgres connects with a lib/pq connection string and creates the
// table.
func OpenPostgres(ctx context.Context, url string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	s := NewPostgresSink(db)
	if err := s.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// Init creates the results table if it does not exist.
func (s *PostgresSink) Init(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS results (
		id BIGSERIAL PRIMARY KEY,
		run_id TEXT NOT NULL DEFAULT '',
		algorithm TEXT NOT NULL,
		case_label TEXT NOT NULL,
		n INTEGER NOT NULL,
		time_sec DOUBLE PRECISION,
		comparisons BIGINT,
		swaps BIGINT,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL
	);`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("init postgres: %w", err)
	}
	return nil
}

func (s *PostgresSink) Append(ctx context.Context, rows []Row) error {
	return insertRows(ctx, s.db, `
		INSERT INTO results (run_id, algorithm, case_label, n, time_sec, comparisons, swaps, status, notes, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, rows)
}

func (s *PostgresSink) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "TRUNCATE TABLE results"); err != nil {
		return fmt.Errorf("reset postgres: %w", err)
	}
	return nil
}

func (s *PostgresSink) List(ctx context.Context) ([]Row, error) {
	return queryRows(ctx, s.db)
}

func (s *PostgresSink) Close() error {
	return s.db.Close()
}
