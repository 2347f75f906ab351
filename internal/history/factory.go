package history

import (
	"fmt"
	"strings"
)

// DefaultPath is the SQLite database used when no DSN is configured.
const DefaultPath = ".readygo.db"

// Config holds configuration for the storage backend
type Config struct {
	Type string // "sqlite" or "postgres"
	DSN  string // File path for SQLite, connection string for Postgres
}

// NewStore creates a Store for the configured backend
func NewStore(config Config) (Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.DSN == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.DSN)
	case "sqlite", "sqlite3", "":
		if config.DSN == "" {
			config.DSN = DefaultPath
		}
		return NewSQLiteStore(config.DSN)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
