package report

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"netmon/internal/metrics"
	"netmon/internal/models"
)

// Aggregator runs all three collectors for a cycle and combines their
// outcomes into a single report. A failure in one collector never prevents
// the others from running or from appearing in the report.
type Aggregator struct {
	ping    models.PingCollector
	speed   models.SpeedCollector
	devices models.DeviceCollector
	dir     string
	out     io.Writer
	logger  *slog.Logger
}

// NewAggregator creates an Aggregator writing report artifacts under dir and
// cycle summaries to out.
func NewAggregator(ping models.PingCollector, speed models.SpeedCollector, devices models.DeviceCollector, dir string, out io.Writer, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		ping:    ping,
		speed:   speed,
		devices: devices,
		dir:     dir,
		out:     out,
		logger:  logger,
	}
}

// RunCycle invokes the collectors concurrently, assembles the report,
// persists it as one artifact and prints the cycle summary. The summary is
// produced even when every measurement failed; only a failed artifact write
// makes the cycle itself fail.
func (a *Aggregator) RunCycle(ctx context.Context) (*models.Report, error) {
	report := &models.Report{
		Timestamp: time.Now(),
		CycleID:   uuid.New(),
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		report.PingResults = a.ping.Collect(ctx)
	}()
	go func() {
		defer wg.Done()
		report.SpeedResult = a.speed.Collect(ctx)
	}()
	go func() {
		defer wg.Done()
		report.Devices = a.devices.Collect(ctx)
	}()
	wg.Wait()

	a.countFailures(report)

	path, err := writeArtifact(a.dir, report)
	if err == nil {
		a.logger.Info("report written", "path", path, "cycle_id", report.CycleID)
	}

	WriteSummary(a.out, report)

	return report, err
}

func (a *Aggregator) countFailures(report *models.Report) {
	for _, outcome := range report.PingResults {
		if outcome.Err != nil {
			metrics.CollectorFailures.WithLabelValues("ping").Inc()
		}
	}
	if report.SpeedResult.Err != nil {
		metrics.CollectorFailures.WithLabelValues("speed").Inc()
	}
	if report.Devices.Err != nil {
		metrics.CollectorFailures.WithLabelValues("devices").Inc()
	}
}
