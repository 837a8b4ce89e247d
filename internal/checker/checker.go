// Package checker probes a list of URLs for reachability. Each URL
// gets a network-layer ping probe and a single HTTP request with
// redirects disabled; results land in a CSV report and a console
// summary table.
package checker

import (
	"context"
	"crypto/tls"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ullaakut/nmap/v3"

	"github.com/netsurvey/netsurvey/internal/config"
	"github.com/netsurvey/netsurvey/internal/logging"
)

// httpOKLower and httpErrLower bound the "reachable" status range:
// anything below 500 means the application answered.
const (
	httpOKLower  = 200
	httpErrLower = 500
)

// PingFunc probes a host at the network layer. Replaceable for tests.
type PingFunc func(ctx context.Context, host string) bool

// Option configures a Checker.
type Option func(*Checker)

// WithPingFunc replaces the default nmap-backed ping probe.
func WithPingFunc(fn PingFunc) Option {
	return func(c *Checker) { c.ping = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// WithHTTPClient replaces the HTTP client. Used by tests that need a
// custom transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) { c.httpClient = client }
}

// Checker performs reachability checks against URLs.
type Checker struct {
	config     config.CheckerConfig
	httpClient *http.Client
	ping       PingFunc
	logger     *logging.Logger
}

// NewChecker creates a checker for the given configuration.
func NewChecker(cfg config.CheckerConfig, opts ...Option) *Checker {
	c := &Checker{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
			// one probe per URL; a 302 is followed manually exactly once
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
			Transport: &http.Transport{
				// reachability of badly configured hosts still counts
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
			},
		},
		logger: logging.Default(),
	}
	c.ping = c.nmapPing
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckURL probes a single URL and returns its result. Probe failures
// are recorded in the result, never returned as errors.
func (c *Checker) CheckURL(ctx context.Context, rawURL string) Result {
	result := Result{URL: rawURL}

	if host := hostFromURL(rawURL); host != "" {
		result.PingOK = c.ping(ctx, host)
	}

	start := time.Now()
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		result.Status = requestErrorText(err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.Status = strconv.Itoa(resp.StatusCode)
	result.LatencyMS = roundMillis(time.Since(start))

	if resp.StatusCode == http.StatusFound {
		result.RedirectURL = resp.Header.Get("Location")
		if result.RedirectURL != "" {
			result.RedirectStatus = c.followRedirect(ctx, result.RedirectURL)
		}
	}

	return result
}

// HTTPReachable reports whether a recorded status means the
// application layer answered.
func HTTPReachable(status string) bool {
	code, err := strconv.Atoi(status)
	if err != nil {
		return false
	}
	return code >= httpOKLower && code < httpErrLower
}

// get performs a single GET with redirects disabled.
func (c *Checker) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

// followRedirect fetches the redirect target once and returns its
// status code, or an error marker when the request fails.
func (c *Checker) followRedirect(ctx context.Context, location string) string {
	resp, err := c.get(ctx, location)
	if err != nil {
		return "request failed"
	}
	defer func() { _ = resp.Body.Close() }()
	return strconv.Itoa(resp.StatusCode)
}

// nmapPing performs a ping-scan of the host and reports whether it
// answered.
func (c *Checker) nmapPing(ctx context.Context, host string) bool {
	pingCtx, cancel := context.WithTimeout(ctx, c.config.PingTimeout)
	defer cancel()

	scanner, err := nmap.NewScanner(pingCtx,
		nmap.WithTargets(host),
		nmap.WithPingScan(),
		nmap.WithTimingTemplate(nmap.TimingAggressive),
	)
	if err != nil {
		c.logger.Debug("failed to create ping scanner", "host", host, "error", err)
		return false
	}

	result, _, err := scanner.Run()
	if err != nil {
		return false
	}

	for i := range result.Hosts {
		if result.Hosts[i].Status.State == "up" {
			return true
		}
	}
	return false
}

// hostFromURL extracts the hostname for the ping probe. Bare hosts
// without a scheme are handled by stripping any path and port.
func hostFromURL(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}

	host := rawURL
	if idx := strings.Index(host, "//"); idx >= 0 {
		host = host[idx+2:]
	}
	if idx := strings.IndexAny(host, "/?"); idx >= 0 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	return host
}

// requestErrorText turns a transport error into a short status cell.
func requestErrorText(err error) string {
	msg := err.Error()
	// url.Error wraps the operation and URL; keep the tail
	if uerr, ok := err.(*url.Error); ok {
		msg = uerr.Err.Error()
	}
	return "request failed: " + msg
}

// roundMillis converts a duration to milliseconds with two decimals.
func roundMillis(d time.Duration) float64 {
	ms := float64(d.Microseconds()) / 1000.0
	return math.Round(ms*100) / 100
}
