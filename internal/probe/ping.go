package probe

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"netmon/internal/models"
)

// Pinger probes reachability with the system ping binary.
type Pinger struct {
	timeout time.Duration
}

// NewPinger creates a Pinger with the given per-probe timeout.
func NewPinger(timeout time.Duration) *Pinger {
	return &Pinger{timeout: timeout}
}

// Probe sends a single echo request to the target and returns the round-trip
// time in milliseconds. A probe that produces no reply within the timeout
// returns models.ErrNoReply; an unresolvable target returns a resolve
// failure. The child process is killed when the timeout expires.
func (p *Pinger) Probe(ctx context.Context, target string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// Platform-specific ping command
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "ping", "-n", "1", "-w", strconv.Itoa(int(p.timeout.Milliseconds())), target)
	} else {
		secs := int(p.timeout.Seconds())
		if secs < 1 {
			secs = 1
		}
		cmd = exec.CommandContext(ctx, "ping", "-c", "1", "-W", strconv.Itoa(secs), target)
	}

	output, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 0, models.ErrNoReply
	}
	if err != nil {
		if isResolveFailure(string(output)) {
			return 0, models.NewFailure(models.KindResolve, "cannot resolve %s", target)
		}
		return 0, models.ErrNoReply
	}

	rtt, ok := parsePingOutput(string(output))
	if !ok {
		return 0, models.NewFailure(models.KindProbe, "unparseable ping output for %s", target)
	}
	return rtt, nil
}

// Parses RTT from ping output.
// Linux/Mac: "time=XX.X ms", Windows: "time=XXms" or "time<1ms".
var rttPatterns = []*regexp.Regexp{
	regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`),
	regexp.MustCompile(`time[=<]([0-9.]+)ms`),
	regexp.MustCompile(`round-trip min/avg/max = [0-9.]+/([0-9.]+)/`),
}

func parsePingOutput(output string) (float64, bool) {
	for _, re := range rttPatterns {
		matches := re.FindStringSubmatch(output)
		if len(matches) > 1 {
			if rtt, err := strconv.ParseFloat(matches[1], 64); err == nil {
				return rtt, true
			}
		}
	}
	return 0, false
}

var resolveMarkers = []string{
	"unknown host",
	"name or service not known",
	"cannot resolve",
	"temporary failure in name resolution",
	"bad address",
}

func isResolveFailure(output string) bool {
	lower := strings.ToLower(output)
	for _, marker := range resolveMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
