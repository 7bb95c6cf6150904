package collector

import (
	"context"
	"testing"

	"netmon/internal/models"
)

func TestDevicesCollectSnapshot(t *testing.T) {
	store := &memStore{}
	scanner := &fakeScanner{neighbors: []models.Neighbor{
		{IP: "192.168.1.1", MAC: "aa:bb:cc:dd:ee:01", State: "REACHABLE"},
		{IP: "192.168.1.42", MAC: "aa:bb:cc:dd:ee:02", State: "STALE"},
	}}
	c := NewDevices(scanner, store, testLogger())

	outcome := c.Collect(context.Background())

	if outcome.Err != nil {
		t.Fatalf("unexpected failure: %v", outcome.Err)
	}
	if len(outcome.Devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(outcome.Devices))
	}
	for _, d := range outcome.Devices {
		if d.Status != "active" {
			t.Errorf("status = %q, want active", d.Status)
		}
		if d.Timestamp.IsZero() {
			t.Error("device record is missing a timestamp")
		}
	}
	if len(store.devices) != 2 {
		t.Errorf("appended %d device rows, want 2", len(store.devices))
	}
}

func TestDevicesCollectEmptyIsNotAnError(t *testing.T) {
	store := &memStore{}
	c := NewDevices(&fakeScanner{}, store, testLogger())

	outcome := c.Collect(context.Background())

	if outcome.Err != nil {
		t.Fatalf("empty scan is a valid result, got: %v", outcome.Err)
	}
	if outcome.Devices == nil {
		t.Error("successful scan must return a non-nil device list")
	}
	if len(store.devices) != 0 {
		t.Errorf("appended %d device rows, want 0", len(store.devices))
	}
}

func TestDevicesCollectFailure(t *testing.T) {
	store := &memStore{}
	fault := models.NewFailure(models.KindUnavailable, "no neighbor table tool available")
	c := NewDevices(&fakeScanner{err: fault}, store, testLogger())

	outcome := c.Collect(context.Background())

	if outcome.Err == nil {
		t.Fatal("expected a failure outcome")
	}
	if outcome.Devices != nil {
		t.Error("failed scan must not be conflated with an empty device list")
	}
	if len(store.devices) != 0 {
		t.Errorf("appended %d device rows, want 0 on failure", len(store.devices))
	}
}
