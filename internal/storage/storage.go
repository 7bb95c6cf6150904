// Package storage provides the durable append logs, one per measurement
// type. Both backends are append-only: rows are added and never rewritten
// or deleted.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"netmon/internal/config"
	"netmon/internal/models"
)

// Open creates the append log store for the configured backend, rooted at
// dir.
func Open(backend, dir string) (models.Store, error) {
	switch backend {
	case config.BackendCSV:
		return NewCSVStore(dir)
	case config.BackendSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
		return NewSQLiteStore(filepath.Join(dir, "netmon.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
