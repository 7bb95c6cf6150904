package models

import "context"

// Store defines the durable append logs, one per measurement type. Rows are
// only ever added; no implementation exposes an update or delete path.
type Store interface {
	AppendPing(record PingRecord) error
	AppendSpeed(record SpeedRecord) error
	AppendDevices(records []DeviceRecord) error
	Close() error
}

// EchoProber sends a single echo probe and reports the round-trip time in
// milliseconds. A lost packet is reported as ErrNoReply; transport faults
// are reported as other errors.
type EchoProber interface {
	Probe(ctx context.Context, target string) (float64, error)
}

// ThroughputProber measures achievable download and upload throughput
// against a reference server, in megabits per second.
type ThroughputProber interface {
	Measure(ctx context.Context) (downloadMbps, uploadMbps float64, err error)
}

// NeighborScanner discovers responsive hosts on the local network together
// with their link-layer addresses.
type NeighborScanner interface {
	Scan(ctx context.Context) ([]Neighbor, error)
}

// PingCollector measures reachability for the configured targets.
type PingCollector interface {
	Collect(ctx context.Context) map[string]PingOutcome
}

// SpeedCollector measures throughput once per cycle.
type SpeedCollector interface {
	Collect(ctx context.Context) SpeedOutcome
}

// DeviceCollector snapshots the devices present on the local network.
type DeviceCollector interface {
	Collect(ctx context.Context) DeviceOutcome
}

// CycleRunner executes one full measurement cycle and returns the report.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*Report, error)
}
