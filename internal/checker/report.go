package checker

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// WriteTable renders the per-URL results as a formatted table.
func WriteTable(w io.Writer, results []Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("URL", "Ping", "HTTP Status", "Latency (ms)", "Redirect Location", "Redirect Status")

	for i := range results {
		r := &results[i]
		latency := ""
		if r.LatencyMS > 0 {
			latency = strconv.FormatFloat(r.LatencyMS, 'f', 2, 64)
		}
		if err := table.Append([]string{
			r.URL,
			formatBool(r.PingOK),
			r.Status,
			latency,
			r.RedirectURL,
			r.RedirectStatus,
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

// WriteSummary prints the aggregate numbers for a completed run.
func WriteSummary(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "Checked %d URLs in %s\n", s.Total, s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Ping reachable: %d/%d (%.1f%%)\n", s.PingReachable, s.Total, s.PingRate())
}
