package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"netmon/internal/models"
)

// RenderLatencyCharts writes one latency-over-time PNG per target from the
// session's successful ping records. Targets with fewer than two points are
// skipped; rendering failures for one target do not stop the others.
func RenderLatencyCharts(dir string, history map[string][]models.PingRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}

	var firstErr error
	for target, records := range history {
		var timestamps []time.Time
		var values []float64
		for _, r := range records {
			if r.Latency == nil {
				continue
			}
			timestamps = append(timestamps, r.Timestamp)
			values = append(values, *r.Latency)
		}
		if len(values) < 2 {
			continue
		}

		if err := renderLatencyChart(dir, target, timestamps, values); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func renderLatencyChart(dir, target string, timestamps []time.Time, values []float64) error {
	graph := chart.Chart{
		Title: fmt.Sprintf("Network Latency - %s", target),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: target,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: values,
			},
		},
	}

	// Add moving average
	if len(values) > 10 {
		ts := graph.Series[0].(chart.TimeSeries)
		graph.Series = append(graph.Series, chart.SMASeries{
			Name: "Moving Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(1),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: ts,
			Period:      10,
		})
	}

	filename := filepath.Join(dir, fmt.Sprintf("latency_%s.png", sanitizeFilename(target)))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("rendering chart for %s: %w", target, err)
	}
	return nil
}

// sanitizeFilename replaces dots and special characters for safe filenames
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		".", "_",
		":", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return replacer.Replace(s)
}
