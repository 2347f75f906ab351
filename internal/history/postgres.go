package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"readygo/pkg/benchmark"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to dsn and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS benchmark_results (
			id BIGSERIAL PRIMARY KEY,
			recorded_at TIMESTAMPTZ NOT NULL,
			name TEXT NOT NULL,
			minimum_ms DOUBLE PRECISION NOT NULL,
			p80_ms DOUBLE PRECISION NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_benchmark_results_name ON benchmark_results (name, recorded_at);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Save stores a recorded run in a single transaction
func (s *PostgresStore) Save(ctx context.Context, recordedAt time.Time, results []benchmark.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	query := `INSERT INTO benchmark_results (recorded_at, name, minimum_ms, p80_ms) VALUES ($1, $2, $3, $4)`
	for _, r := range results {
		if _, err := tx.ExecContext(ctx, query, recordedAt.UTC(), r.Name, r.MinimumTime, r.P80); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save %q: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

// Recent retrieves the newest records
func (s *PostgresStore) Recent(ctx context.Context, name string, limit int) ([]Record, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if name == "" {
		query := `SELECT id, name, minimum_ms, p80_ms, recorded_at FROM benchmark_results ORDER BY recorded_at DESC, id DESC LIMIT $1`
		rows, err = s.db.QueryContext(ctx, query, limit)
	} else {
		query := `SELECT id, name, minimum_ms, p80_ms, recorded_at FROM benchmark_results WHERE lower(name) = lower($1) ORDER BY recorded_at DESC, id DESC LIMIT $2`
		rows, err = s.db.QueryContext(ctx, query, name, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}
