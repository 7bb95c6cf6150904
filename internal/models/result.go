package models

import (
	"errors"
	"fmt"
)

// ErrNoReply is returned by an echo probe when no reply arrived within the
// probe timeout. It marks a lost packet, not a transport fault, and counts
// toward packet loss rather than aborting the sample.
var ErrNoReply = errors.New("no echo reply within timeout")

// FailureKind tags a collector failure so callers can branch on the class of
// fault instead of inspecting message strings.
type FailureKind string

const (
	// KindResolve marks an unresolvable or unroutable target.
	KindResolve FailureKind = "resolve"
	// KindTimeout marks a measurement that exceeded its external cap.
	KindTimeout FailureKind = "timeout"
	// KindProbe marks a fault inside the underlying probe capability.
	KindProbe FailureKind = "probe"
	// KindUnavailable marks a missing capability, such as no usable
	// reference server or no neighbor-table tool on the host.
	KindUnavailable FailureKind = "unavailable"
	// KindInternal marks unexpected faults inside the monitor itself.
	KindInternal FailureKind = "internal"
)

// Failure is the error half of a collector outcome.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewFailure creates a Failure with a formatted message.
func NewFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsFailure converts err to a *Failure, preserving an existing Failure in the
// chain and otherwise tagging err with the fallback kind.
func AsFailure(err error, fallback FailureKind) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: fallback, Message: err.Error()}
}

// PingOutcome is the per-target result of a reachability collection. Exactly
// one of Record and Err is set.
type PingOutcome struct {
	Record *PingRecord `json:"record,omitempty"`
	Err    *Failure    `json:"error,omitempty"`
}

// SpeedOutcome is the whole-call result of a throughput collection.
type SpeedOutcome struct {
	Record *SpeedRecord `json:"record,omitempty"`
	Err    *Failure     `json:"error,omitempty"`
}

// DeviceOutcome is the whole-call result of a device discovery. On success
// Devices is non-nil even when empty, so "no devices found" stays
// distinguishable from "scan failed".
type DeviceOutcome struct {
	Devices []DeviceRecord `json:"devices"`
	Err     *Failure       `json:"error,omitempty"`
}
