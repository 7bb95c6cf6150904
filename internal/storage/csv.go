package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"netmon/internal/models"
)

// CSVStore appends measurement rows to per-type CSV files. A header row is
// written when a file is first created and never again. Each file has a
// single writer guarded by its own mutex; different files never contend.
type CSVStore struct {
	pingMu   sync.Mutex
	speedMu  sync.Mutex
	deviceMu sync.Mutex

	pingPath   string
	speedPath  string
	devicePath string
}

// NewCSVStore creates the storage directory if needed and initializes the
// three history files with their header rows.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	s := &CSVStore{
		pingPath:   filepath.Join(dir, "ping_history.csv"),
		speedPath:  filepath.Join(dir, "speed_history.csv"),
		devicePath: filepath.Join(dir, "device_history.csv"),
	}

	headers := map[string][]string{
		s.pingPath:   {"timestamp", "latency", "packet_loss"},
		s.speedPath:  {"timestamp", "download_mbps", "upload_mbps"},
		s.devicePath: {"timestamp", "device_ip", "device_mac", "status"},
	}
	for path, header := range headers {
		if err := ensureHeader(path, header); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func ensureHeader(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func appendRows(path string, rows [][]string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("appending to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// AppendPing appends one reachability row. A nil latency is stored as an
// empty field.
func (s *CSVStore) AppendPing(record models.PingRecord) error {
	latency := ""
	if record.Latency != nil {
		latency = formatFloat(*record.Latency)
	}
	row := []string{
		record.Timestamp.Format(time.RFC3339),
		latency,
		formatFloat(record.PacketLoss),
	}

	s.pingMu.Lock()
	defer s.pingMu.Unlock()
	return appendRows(s.pingPath, [][]string{row})
}

// AppendSpeed appends one throughput row.
func (s *CSVStore) AppendSpeed(record models.SpeedRecord) error {
	row := []string{
		record.Timestamp.Format(time.RFC3339),
		formatFloat(record.DownloadMbps),
		formatFloat(record.UploadMbps),
	}

	s.speedMu.Lock()
	defer s.speedMu.Unlock()
	return appendRows(s.speedPath, [][]string{row})
}

// AppendDevices appends one row per discovered device in a single write.
func (s *CSVStore) AppendDevices(records []models.DeviceRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Timestamp.Format(time.RFC3339),
			r.IP,
			r.MAC,
			r.Status,
		})
	}

	s.deviceMu.Lock()
	defer s.deviceMu.Unlock()
	return appendRows(s.devicePath, rows)
}

// Close is a no-op; files are opened per append.
func (s *CSVStore) Close() error { return nil }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
