package collector

import (
	"context"
	"log/slog"
	"time"

	"netmon/internal/models"
)

// Devices snapshots the hosts present on the local network. A successful
// scan appends one row per discovered device; a failed scan appends nothing
// and is reported as an error, never as an empty list.
type Devices struct {
	scanner models.NeighborScanner
	store   models.Store
	logger  *slog.Logger
}

// NewDevices creates a device-discovery collector.
func NewDevices(scanner models.NeighborScanner, store models.Store, logger *slog.Logger) *Devices {
	return &Devices{scanner: scanner, store: store, logger: logger}
}

// Collect scans the local network and returns the snapshot of responding
// devices, possibly empty.
func (c *Devices) Collect(ctx context.Context) models.DeviceOutcome {
	neighbors, err := c.scanner.Scan(ctx)
	if err != nil {
		failure := models.AsFailure(err, models.KindProbe)
		c.logger.Error("device scan failed", "kind", failure.Kind, "error", failure.Message)
		return models.DeviceOutcome{Err: failure}
	}

	now := time.Now()
	devices := make([]models.DeviceRecord, 0, len(neighbors))
	for _, n := range neighbors {
		devices = append(devices, models.DeviceRecord{
			Timestamp: now,
			IP:        n.IP,
			MAC:       n.MAC,
			Status:    "active",
		})
	}

	if len(devices) > 0 {
		if err := c.store.AppendDevices(devices); err != nil {
			c.logger.Error("failed to append device rows", "error", err)
		}
	}

	c.logger.Info("device scan complete", "devices", len(devices))
	return models.DeviceOutcome{Devices: devices}
}
