package collector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"netmon/internal/models"
)

// Ping measures reachability for a fixed set of targets. Each target is
// probed sampleCount times per collection; one row per target is appended to
// the ping log on every call, including targets that failed outright, which
// are recorded as nil latency with 100% loss.
type Ping struct {
	prober  models.EchoProber
	store   models.Store
	targets []string
	samples int
	logger  *slog.Logger
}

// NewPing creates a reachability collector.
func NewPing(prober models.EchoProber, store models.Store, targets []string, samples int, logger *slog.Logger) *Ping {
	return &Ping{
		prober:  prober,
		store:   store,
		targets: targets,
		samples: samples,
		logger:  logger,
	}
}

// Collect probes every configured target and returns one outcome per target.
// A failing target never prevents the remaining targets from being measured.
func (c *Ping) Collect(ctx context.Context) map[string]models.PingOutcome {
	results := make(map[string]models.PingOutcome, len(c.targets))
	for _, target := range c.targets {
		results[target] = c.collectTarget(ctx, target)
	}
	return results
}

func (c *Ping) collectTarget(ctx context.Context, target string) models.PingOutcome {
	var latencies []float64
	var fault *models.Failure

	for i := 0; i < c.samples; i++ {
		rtt, err := c.prober.Probe(ctx, target)
		if err == nil {
			latencies = append(latencies, rtt)
			continue
		}
		if errors.Is(err, models.ErrNoReply) {
			// A lost packet counts toward loss; keep sampling.
			continue
		}
		// Transport-level fault: stop sampling this target. The remaining
		// probes would fail the same way.
		fault = models.AsFailure(err, models.KindProbe)
		c.logger.Error("ping probe failed", "target", target, "kind", fault.Kind, "error", fault.Message)
		break
	}

	record := models.PingRecord{
		Timestamp:  time.Now(),
		Target:     target,
		PacketLoss: 100,
	}
	if fault == nil && len(latencies) > 0 {
		sum := 0.0
		for _, l := range latencies {
			sum += l
		}
		mean := sum / float64(len(latencies))
		record.Latency = &mean
		record.PacketLoss = float64(c.samples-len(latencies)) / float64(c.samples) * 100
	}

	// Failed targets are still logged as total-loss rows so the ping history
	// keeps one row per target per cycle.
	if err := c.store.AppendPing(record); err != nil {
		c.logger.Error("failed to append ping row", "target", target, "error", err)
	}

	if fault != nil {
		return models.PingOutcome{Err: fault}
	}
	return models.PingOutcome{Record: &record}
}
