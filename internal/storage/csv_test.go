package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"netmon/internal/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return rows
}

func TestCSVStoreHeadersOnCreation(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCSVStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	rows := readCSV(t, filepath.Join(dir, "ping_history.csv"))
	if len(rows) != 1 {
		t.Fatalf("new ping log has %d rows, want header only", len(rows))
	}
	want := []string{"timestamp", "latency", "packet_loss"}
	for i, col := range want {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
}

func TestCSVStoreHeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()

	store, err := NewCSVStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	latency := 12.5
	if err := store.AppendPing(models.PingRecord{Timestamp: time.Now(), Target: "8.8.8.8", Latency: &latency, PacketLoss: 0}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Reopening the same directory must not rewrite headers or drop rows.
	store, err = NewCSVStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AppendPing(models.PingRecord{Timestamp: time.Now(), Target: "8.8.8.8", PacketLoss: 100}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	rows := readCSV(t, filepath.Join(dir, "ping_history.csv"))
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus two appends", len(rows))
	}
	if rows[0][0] != "timestamp" {
		t.Errorf("first row = %v, want header", rows[0])
	}
	if rows[1][1] != "12.5" {
		t.Errorf("latency field = %q, want 12.5", rows[1][1])
	}
	// Null latency is an empty field with total loss.
	if rows[2][1] != "" || rows[2][2] != "100" {
		t.Errorf("total-loss row = %v, want empty latency and 100 loss", rows[2])
	}
}

func TestCSVStoreSpeedAndDevices(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCSVStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	now := time.Now()
	if err := store.AppendSpeed(models.SpeedRecord{Timestamp: now, DownloadMbps: 94.2, UploadMbps: 11.7}); err != nil {
		t.Fatal(err)
	}
	devices := []models.DeviceRecord{
		{Timestamp: now, IP: "192.168.1.1", MAC: "aa:bb:cc:dd:ee:01", Status: "active"},
		{Timestamp: now, IP: "192.168.1.42", MAC: "aa:bb:cc:dd:ee:02", Status: "active"},
	}
	if err := store.AppendDevices(devices); err != nil {
		t.Fatal(err)
	}

	speedRows := readCSV(t, filepath.Join(dir, "speed_history.csv"))
	if len(speedRows) != 2 {
		t.Fatalf("speed log has %d rows, want header plus one", len(speedRows))
	}
	if speedRows[1][1] != "94.2" || speedRows[1][2] != "11.7" {
		t.Errorf("speed row = %v", speedRows[1])
	}

	deviceRows := readCSV(t, filepath.Join(dir, "device_history.csv"))
	if len(deviceRows) != 3 {
		t.Fatalf("device log has %d rows, want header plus two", len(deviceRows))
	}
	if deviceRows[1][1] != "192.168.1.1" || deviceRows[2][2] != "aa:bb:cc:dd:ee:02" {
		t.Errorf("device rows = %v", deviceRows[1:])
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("postgres", t.TempDir()); err == nil {
		t.Error("expected an error for unknown backend")
	}
}
