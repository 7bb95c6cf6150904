package collector

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"netmon/internal/models"
)

// memStore records appends in memory for assertions.
type memStore struct {
	mu      sync.Mutex
	pings   []models.PingRecord
	speeds  []models.SpeedRecord
	devices []models.DeviceRecord
	fail    error
}

func (s *memStore) AppendPing(r models.PingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.pings = append(s.pings, r)
	return nil
}

func (s *memStore) AppendSpeed(r models.SpeedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.speeds = append(s.speeds, r)
	return nil
}

func (s *memStore) AppendDevices(rs []models.DeviceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.devices = append(s.devices, rs...)
	return nil
}

func (s *memStore) Close() error { return nil }

// scriptedProber replays per-target probe results in order.
type scriptedProber struct {
	mu      sync.Mutex
	script  map[string][]probeResult
	indexes map[string]int
}

type probeResult struct {
	rtt float64
	err error
}

func (p *scriptedProber) Probe(_ context.Context, target string) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.indexes == nil {
		p.indexes = make(map[string]int)
	}
	results := p.script[target]
	i := p.indexes[target]
	if i >= len(results) {
		return 0, models.ErrNoReply
	}
	p.indexes[target] = i + 1
	return results[i].rtt, results[i].err
}

type fakeThroughput struct {
	download float64
	upload   float64
	err      error
}

func (f *fakeThroughput) Measure(context.Context) (float64, float64, error) {
	return f.download, f.upload, f.err
}

type fakeScanner struct {
	neighbors []models.Neighbor
	err       error
}

func (f *fakeScanner) Scan(context.Context) ([]models.Neighbor, error) {
	return f.neighbors, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
