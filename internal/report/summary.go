package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"netmon/internal/models"
)

// WriteSummary prints a human-readable summary of one cycle. Every
// measurement appears whether it succeeded or failed; error text is shown
// inline rather than suppressed.
func WriteSummary(w io.Writer, report *models.Report) {
	fmt.Fprintf(w, "\n=== Network Status Report ===\n")
	fmt.Fprintf(w, "Time: %s\n", report.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, strings.Repeat("=", 29))

	fmt.Fprintln(w, "\nPing Results:")
	targets := make([]string, 0, len(report.PingResults))
	for target := range report.PingResults {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	for _, target := range targets {
		outcome := report.PingResults[target]
		switch {
		case outcome.Err != nil:
			fmt.Fprintf(w, "%s: Error - %s\n", target, outcome.Err.Message)
		case outcome.Record.Latency == nil:
			fmt.Fprintf(w, "%s: no replies (100%% loss)\n", target)
		default:
			fmt.Fprintf(w, "%s: %.1fms (%.1f%% loss)\n", target, *outcome.Record.Latency, outcome.Record.PacketLoss)
		}
	}

	fmt.Fprintln(w, "\nSpeed Test Results:")
	if report.SpeedResult.Err != nil {
		fmt.Fprintf(w, "Speed test error: %s\n", report.SpeedResult.Err.Message)
	} else {
		fmt.Fprintf(w, "Download: %.2f Mbps\n", report.SpeedResult.Record.DownloadMbps)
		fmt.Fprintf(w, "Upload: %.2f Mbps\n", report.SpeedResult.Record.UploadMbps)
	}

	if report.Devices.Err != nil {
		fmt.Fprintf(w, "\nDevice scan error: %s\n", report.Devices.Err.Message)
	} else {
		fmt.Fprintf(w, "\nActive Devices: %d\n", len(report.Devices.Devices))
	}
}
