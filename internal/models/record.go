package models

import (
	"time"

	"github.com/google/uuid"
)

// PingRecord represents one cycle's reachability measurement for a target.
// Latency is the mean over successful probes in milliseconds; it is nil
// exactly when zero probes in the sample succeeded, in which case
// PacketLoss is 100.
type PingRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Target     string    `json:"target"`
	Latency    *float64  `json:"latency"`
	PacketLoss float64   `json:"packet_loss"`
}

// SpeedRecord represents one throughput measurement.
type SpeedRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	DownloadMbps float64   `json:"download_mbps"`
	UploadMbps   float64   `json:"upload_mbps"`
}

// DeviceRecord represents one device observed on the local network during a
// cycle. The set of records for a cycle is a snapshot, not a diff.
type DeviceRecord struct {
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"device_ip"`
	MAC       string    `json:"device_mac"`
	Status    string    `json:"status"`
}

// Neighbor is a raw entry from the neighbor-scan probe before it is
// normalized into a DeviceRecord.
type Neighbor struct {
	IP    string
	MAC   string
	State string
}

// Report is the per-cycle snapshot combining the latest outcome of every
// measurement type. A Report is never mutated after it has been written.
type Report struct {
	Timestamp   time.Time              `json:"timestamp"`
	CycleID     uuid.UUID              `json:"cycle_id"`
	PingResults map[string]PingOutcome `json:"ping_results"`
	SpeedResult SpeedOutcome           `json:"speed_result"`
	Devices     DeviceOutcome          `json:"device_list"`
}
