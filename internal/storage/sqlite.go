package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"netmon/internal/models"
)

// SQLiteStore keeps the append logs in a single SQLite database with one
// insert-only table per measurement type. database/sql serializes access,
// so no extra locking is needed per log.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// history tables exist.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// Enable WAL mode for better concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	schema := `
    CREATE TABLE IF NOT EXISTS ping_history (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp DATETIME NOT NULL,
        target TEXT NOT NULL,
        latency REAL,
        packet_loss REAL NOT NULL
    );

    CREATE TABLE IF NOT EXISTS speed_history (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp DATETIME NOT NULL,
        download_mbps REAL NOT NULL,
        upload_mbps REAL NOT NULL
    );

    CREATE TABLE IF NOT EXISTS device_history (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp DATETIME NOT NULL,
        device_ip TEXT NOT NULL,
        device_mac TEXT NOT NULL,
        status TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_ping_timestamp ON ping_history(timestamp);
    `
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema creation failed: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AppendPing inserts one reachability row. A nil latency is stored as NULL.
func (s *SQLiteStore) AppendPing(record models.PingRecord) error {
	latency := sql.NullFloat64{}
	if record.Latency != nil {
		latency = sql.NullFloat64{Float64: *record.Latency, Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO ping_history (timestamp, target, latency, packet_loss) VALUES (?, ?, ?, ?)`,
		record.Timestamp, record.Target, latency, record.PacketLoss,
	)
	return err
}

// AppendSpeed inserts one throughput row.
func (s *SQLiteStore) AppendSpeed(record models.SpeedRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO speed_history (timestamp, download_mbps, upload_mbps) VALUES (?, ?, ?)`,
		record.Timestamp, record.DownloadMbps, record.UploadMbps,
	)
	return err
}

// AppendDevices inserts one row per discovered device in a single
// transaction.
func (s *SQLiteStore) AppendDevices(records []models.DeviceRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, r := range records {
		if _, err := tx.Exec(
			`INSERT INTO device_history (timestamp, device_ip, device_mac, status) VALUES (?, ?, ?, ?)`,
			r.Timestamp, r.IP, r.MAC, r.Status,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
