package report

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"netmon/internal/models"
)

type fakePing struct {
	results map[string]models.PingOutcome
}

func (f *fakePing) Collect(context.Context) map[string]models.PingOutcome { return f.results }

type fakeSpeed struct {
	outcome models.SpeedOutcome
}

func (f *fakeSpeed) Collect(context.Context) models.SpeedOutcome { return f.outcome }

type fakeDevices struct {
	outcome models.DeviceOutcome
}

func (f *fakeDevices) Collect(context.Context) models.DeviceOutcome { return f.outcome }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunCycleIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	ping := &fakePing{results: map[string]models.PingOutcome{
		"192.168.1.1": {Err: models.NewFailure(models.KindProbe, "probe capability unavailable")},
	}}
	speed := &fakeSpeed{outcome: models.SpeedOutcome{Record: &models.SpeedRecord{
		Timestamp:    time.Now(),
		DownloadMbps: 87.3,
		UploadMbps:   9.9,
	}}}
	devices := &fakeDevices{outcome: models.DeviceOutcome{Devices: []models.DeviceRecord{}}}

	var out bytes.Buffer
	agg := NewAggregator(ping, speed, devices, dir, &out, testLogger())

	rep, err := agg.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	// The ping failure is present as an error marker.
	if rep.PingResults["192.168.1.1"].Err == nil {
		t.Error("expected a ping failure marker in the report")
	}
	// The speed success still made it into the same report.
	if rep.SpeedResult.Err != nil || rep.SpeedResult.Record == nil {
		t.Fatalf("speed result lost: %+v", rep.SpeedResult)
	}
	if rep.SpeedResult.Record.DownloadMbps != 87.3 {
		t.Errorf("download = %v, want 87.3", rep.SpeedResult.Record.DownloadMbps)
	}
	if rep.Devices.Err != nil {
		t.Errorf("device outcome = %+v, want success", rep.Devices)
	}
	if rep.CycleID == uuid.Nil {
		t.Error("report is missing a cycle ID")
	}
}

func TestRunCycleWritesOneArtifact(t *testing.T) {
	dir := t.TempDir()
	ping := &fakePing{results: map[string]models.PingOutcome{}}
	speed := &fakeSpeed{outcome: models.SpeedOutcome{Err: models.NewFailure(models.KindTimeout, "measurement exceeded time limit")}}
	devices := &fakeDevices{outcome: models.DeviceOutcome{Err: models.NewFailure(models.KindUnavailable, "no neighbor table tool available")}}

	agg := NewAggregator(ping, speed, devices, dir, io.Discard, testLogger())

	rep, err := agg.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	// Exactly one artifact regardless of how many collectors failed.
	matches, err := filepath.Glob(filepath.Join(dir, "report_*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("found %d artifacts, want 1", len(matches))
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	var decoded models.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if decoded.CycleID != rep.CycleID {
		t.Errorf("artifact cycle ID = %s, want %s", decoded.CycleID, rep.CycleID)
	}
	if decoded.SpeedResult.Err == nil || decoded.SpeedResult.Err.Kind != models.KindTimeout {
		t.Errorf("speed failure not preserved in artifact: %+v", decoded.SpeedResult)
	}
}

func TestWriteArtifactCollision(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := writeArtifact(dir, &models.Report{Timestamp: ts})
	if err != nil {
		t.Fatal(err)
	}
	second, err := writeArtifact(dir, &models.Report{Timestamp: ts})
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Fatalf("two cycles in the same second wrote to the same artifact %s", first)
	}
	if filepath.Base(first) != "report_20250601_120000.json" {
		t.Errorf("first artifact = %s, want deterministic timestamp name", first)
	}
	if !strings.HasSuffix(second, "_1.json") {
		t.Errorf("second artifact = %s, want a numeric suffix", second)
	}
}
