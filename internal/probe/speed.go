package probe

import (
	"context"
	"errors"
	"time"

	"github.com/showwin/speedtest-go/speedtest"

	"netmon/internal/models"
)

// SpeedTester measures throughput against the nearest speedtest.net server.
type SpeedTester struct {
	client  *speedtest.Speedtest
	timeout time.Duration
}

// NewSpeedTester creates a SpeedTester with the given whole-call timeout.
func NewSpeedTester(timeout time.Duration) *SpeedTester {
	return &SpeedTester{
		client:  speedtest.New(),
		timeout: timeout,
	}
}

// Measure runs a download then upload test and returns both rates in
// megabits per second. Any fault fails the whole call; a partial
// download-only result is discarded.
func (s *SpeedTester) Measure(ctx context.Context) (float64, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	serverList, err := s.client.FetchServerListContext(ctx)
	if err != nil {
		return 0, 0, classify(ctx, models.KindUnavailable, err)
	}

	servers, err := serverList.FindServer(nil)
	if err != nil || len(servers) == 0 {
		return 0, 0, models.NewFailure(models.KindUnavailable, "no usable reference server")
	}
	server := servers[0]

	if err := server.PingTestContext(ctx, nil); err != nil {
		return 0, 0, classify(ctx, models.KindProbe, err)
	}
	if err := server.DownloadTestContext(ctx); err != nil {
		return 0, 0, classify(ctx, models.KindProbe, err)
	}
	if err := server.UploadTestContext(ctx); err != nil {
		return 0, 0, classify(ctx, models.KindProbe, err)
	}

	return server.DLSpeed.Mbps(), server.ULSpeed.Mbps(), nil
}

func classify(ctx context.Context, kind models.FailureKind, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return models.NewFailure(models.KindTimeout, "measurement exceeded time limit")
	}
	return models.AsFailure(err, kind)
}
