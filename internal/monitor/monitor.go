package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"netmon/internal/metrics"
	"netmon/internal/models"
	"netmon/internal/report"
)

// Cap on retained per-target latency points for chart rendering.
const maxHistoryPoints = 1440

// Options configures the run loop.
type Options struct {
	// Interval is the delay between successful cycles.
	Interval time.Duration
	// Backoff is the shorter delay used after a failed cycle.
	Backoff time.Duration
	// ChartEvery renders latency charts every N cycles; 0 disables charts.
	ChartEvery int
	// ChartDir is where rendered charts are written.
	ChartDir string
}

// Monitor drives repeated measurement cycles. Cycles never overlap: the
// next cycle starts only after the previous one has returned, successfully
// or not, and an unexpected cycle error triggers the backoff interval
// instead of terminating the loop.
type Monitor struct {
	runner  models.CycleRunner
	opts    Options
	logger  *slog.Logger
	history map[string][]models.PingRecord
}

// New creates a Monitor.
func New(runner models.CycleRunner, opts Options, logger *slog.Logger) *Monitor {
	return &Monitor{
		runner:  runner,
		opts:    opts,
		logger:  logger,
		history: make(map[string][]models.PingRecord),
	}
}

// Run executes cycles until ctx is cancelled. Cancellation is honored
// during the sleep phase and between cycles; it is not an error and already
// appended rows stay intact. Each collector bounds its own probes, so a
// cycle in flight finishes quickly after cancellation.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started", "interval", m.opts.Interval, "backoff", m.opts.Backoff)

	for cycle := 1; ; cycle++ {
		delay := m.opts.Interval
		if err := m.runCycle(ctx); err != nil {
			metrics.CycleErrors.Inc()
			m.logger.Error("cycle failed", "cycle", cycle, "error", err, "retry_in", m.opts.Backoff)
			delay = m.opts.Backoff
		}

		if m.opts.ChartEvery > 0 && cycle%m.opts.ChartEvery == 0 {
			m.renderCharts()
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			m.renderCharts()
			m.logger.Info("monitor stopped", "cycles", cycle)
			return nil
		case <-timer.C:
		}
	}
}

// runCycle invokes the aggregator once. Anything not already isolated
// inside a collector, including panics, is converted into a cycle error so
// the loop keeps running.
func (m *Monitor) runCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panicked: %v", r)
		}
	}()

	start := time.Now()
	metrics.CyclesTotal.Inc()

	rep, err := m.runner.RunCycle(ctx)
	metrics.CycleDuration.Observe(time.Since(start).Seconds())

	if rep != nil {
		m.recordHistory(rep)
	}
	return err
}

func (m *Monitor) recordHistory(rep *models.Report) {
	for target, outcome := range rep.PingResults {
		if outcome.Record == nil || outcome.Record.Latency == nil {
			continue
		}
		points := append(m.history[target], *outcome.Record)
		if len(points) > maxHistoryPoints {
			points = points[len(points)-maxHistoryPoints:]
		}
		m.history[target] = points
	}
}

func (m *Monitor) renderCharts() {
	if m.opts.ChartEvery <= 0 || len(m.history) == 0 {
		return
	}
	if err := report.RenderLatencyCharts(m.opts.ChartDir, m.history); err != nil {
		m.logger.Error("failed to render latency charts", "error", err)
	}
}
