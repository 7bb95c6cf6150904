package collector

import (
	"context"
	"log/slog"
	"time"

	"netmon/internal/models"
)

// Speed measures achievable throughput once per cycle. A success appends
// exactly one row to the speed log; a failure appends nothing.
type Speed struct {
	prober models.ThroughputProber
	store  models.Store
	logger *slog.Logger
}

// NewSpeed creates a throughput collector.
func NewSpeed(prober models.ThroughputProber, store models.Store, logger *slog.Logger) *Speed {
	return &Speed{prober: prober, store: store, logger: logger}
}

// Collect runs one download and upload measurement. Any fault in the
// underlying probe fails the whole call.
func (c *Speed) Collect(ctx context.Context) models.SpeedOutcome {
	c.logger.Info("running speed test")

	download, upload, err := c.prober.Measure(ctx)
	if err != nil {
		failure := models.AsFailure(err, models.KindProbe)
		c.logger.Error("speed test failed", "kind", failure.Kind, "error", failure.Message)
		return models.SpeedOutcome{Err: failure}
	}

	record := models.SpeedRecord{
		Timestamp:    time.Now(),
		DownloadMbps: download,
		UploadMbps:   upload,
	}
	if err := c.store.AppendSpeed(record); err != nil {
		c.logger.Error("failed to append speed row", "error", err)
	}

	c.logger.Info("speed test complete", "download_mbps", download, "upload_mbps", upload)
	return models.SpeedOutcome{Record: &record}
}
