// Package history keeps every recorded run in a SQL database so a benchmark
// can be tracked across many baselines.
package history

import (
	"context"
	"time"

	"readygo/pkg/benchmark"
)

// Store persists recorded results.
type Store interface {
	Close() error
	// Save stores one recorded run. All results share recordedAt.
	Save(ctx context.Context, recordedAt time.Time, results []benchmark.Result) error
	// Recent returns up to limit records, newest first. An empty name
	// matches every benchmark.
	Recent(ctx context.Context, name string, limit int) ([]Record, error)
}

// Record is one stored result.
type Record struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	MinimumTime float64   `json:"minimumTime"`
	P80         float64   `json:"p80"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type scanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows scanner) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.MinimumTime, &r.P80, &r.RecordedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
