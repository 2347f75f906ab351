package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"readygo/pkg/benchmark"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS benchmark_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at DATETIME NOT NULL,
		name TEXT NOT NULL,
		minimum_ms REAL NOT NULL,
		p80_ms REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_benchmark_results_name ON benchmark_results (name, recorded_at);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save stores a recorded run in a single transaction
func (s *SQLiteStore) Save(ctx context.Context, recordedAt time.Time, results []benchmark.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	query := `INSERT INTO benchmark_results (recorded_at, name, minimum_ms, p80_ms) VALUES (?, ?, ?, ?)`
	for _, r := range results {
		if _, err := tx.ExecContext(ctx, query, recordedAt.UTC(), r.Name, r.MinimumTime, r.P80); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save %q: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

// Recent retrieves the newest records
func (s *SQLiteStore) Recent(ctx context.Context, name string, limit int) ([]Record, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if name == "" {
		query := `SELECT id, name, minimum_ms, p80_ms, recorded_at FROM benchmark_results ORDER BY recorded_at DESC, id DESC LIMIT ?`
		rows, err = s.db.QueryContext(ctx, query, limit)
	} else {
		query := `SELECT id, name, minimum_ms, p80_ms, recorded_at FROM benchmark_results WHERE lower(name) = lower(?) ORDER BY recorded_at DESC, id DESC LIMIT ?`
		rows, err = s.db.QueryContext(ctx, query, name, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}
