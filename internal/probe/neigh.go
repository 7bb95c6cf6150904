package probe

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"netmon/internal/models"
)

// NeighborTable discovers devices on the local network by reading the OS
// neighbor table. This is a passive read rather than an active probe sweep;
// a stuck child process is killed when the timeout expires, but an already
// spawned scan may linger until it exits on its own.
type NeighborTable struct {
	timeout time.Duration
}

// NewNeighborTable creates a NeighborTable scanner with the given whole-call
// timeout.
func NewNeighborTable(timeout time.Duration) *NeighborTable {
	return &NeighborTable{timeout: timeout}
}

// Scan returns the reachable neighbors known to the host. It prefers
// `ip neigh` and falls back to `arp -a`. A missing tool or unusable output
// fails the whole call; zero parsed neighbors is a valid empty result.
func (n *NeighborTable) Scan(ctx context.Context) ([]models.Neighbor, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, "ip", "neigh", "show").CombinedOutput()
	if err == nil {
		return parseIPNeigh(string(output)), nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, models.NewFailure(models.KindTimeout, "neighbor scan exceeded time limit")
	}

	output, arpErr := exec.CommandContext(ctx, "arp", "-a").CombinedOutput()
	if arpErr != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, models.NewFailure(models.KindTimeout, "neighbor scan exceeded time limit")
		}
		return nil, models.NewFailure(models.KindUnavailable, "no neighbor table tool available: %v", arpErr)
	}
	return parseARP(string(output)), nil
}

// ip neigh: "192.168.1.10 dev eth0 lladdr aa:bb:cc:dd:ee:ff REACHABLE"
var ipNeighPattern = regexp.MustCompile(`^(\S+) dev \S+ lladdr ([0-9a-fA-F:]{17}) (\S+)$`)

// arp -a: "router.lan (192.168.1.1) at aa:bb:cc:dd:ee:ff [ether] on eth0"
var arpPattern = regexp.MustCompile(`\((\d+\.\d+\.\d+\.\d+)\) at ([0-9a-fA-F:]{17})`)

func parseIPNeigh(output string) []models.Neighbor {
	var neighbors []models.Neighbor
	for _, line := range strings.Split(output, "\n") {
		matches := ipNeighPattern.FindStringSubmatch(strings.TrimSpace(line))
		if len(matches) != 4 {
			continue
		}
		state := matches[3]
		// FAILED and INCOMPLETE entries have no usable link-layer address;
		// STALE entries are hosts that responded recently.
		if state != "REACHABLE" && state != "STALE" && state != "DELAY" && state != "PROBE" {
			continue
		}
		neighbors = append(neighbors, models.Neighbor{
			IP:    matches[1],
			MAC:   strings.ToLower(matches[2]),
			State: state,
		})
	}
	return neighbors
}

func parseARP(output string) []models.Neighbor {
	var neighbors []models.Neighbor
	for _, line := range strings.Split(output, "\n") {
		matches := arpPattern.FindStringSubmatch(line)
		if len(matches) != 3 {
			continue
		}
		neighbors = append(neighbors, models.Neighbor{
			IP:    matches[1],
			MAC:   strings.ToLower(matches[2]),
			State: "REACHABLE",
		})
	}
	return neighbors
}
