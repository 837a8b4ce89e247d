package checker

import (
	"time"
)

// Result holds the outcome of checking a single URL.
type Result struct {
	// URL as read from the input file
	URL string

	// PingOK reports whether the host answered a network-layer probe
	PingOK bool

	// Status is the HTTP status code, or an error description when the
	// request never produced a response
	Status string

	// LatencyMS is the time to first response in milliseconds
	LatencyMS float64

	// RedirectURL is the Location header of a 302 response
	RedirectURL string

	// RedirectStatus is the status of the single follow-up request to
	// RedirectURL, when one was made
	RedirectStatus string
}

// Summary aggregates a completed check run.
type Summary struct {
	Total         int
	PingReachable int
	Elapsed       time.Duration
}

// PingRate returns the ping success rate in percent.
func (s *Summary) PingRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.PingReachable) / float64(s.Total) * 100
}

// Summarize builds a Summary from check results.
func Summarize(results []Result, elapsed time.Duration) *Summary {
	s := &Summary{
		Total:   len(results),
		Elapsed: elapsed,
	}
	for i := range results {
		if results[i].PingOK {
			s.PingReachable++
		}
	}
	return s
}
