// Package sampler draws unique random IP addresses from CIDR ranges.
// Ranges are expanded into their usable host addresses (network and
// broadcast excluded), pooled together, and sampled without
// replacement.
package sampler

import (
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/netsurvey/netsurvey/internal/errors"
	"github.com/netsurvey/netsurvey/internal/logging"
)

// Bounds for the requested address count.
const (
	MinCount = 10
	MaxCount = 5000
)

// DefaultMaxPoolSize caps the cumulative host pool. A /10 already
// holds about four million hosts; anything wider is almost certainly a
// typo and would pin that much memory.
const DefaultMaxPoolSize = 1 << 22

// Request describes a sampling request. Count bounds are enforced
// before any range is processed.
type Request struct {
	Ranges []string
	Count  int `validate:"gte=10,lte=5000"`
}

var validate = validator.New()

// Option configures a Sampler.
type Option func(*Sampler)

// WithMaxPoolSize overrides the cumulative pool size guard.
func WithMaxPoolSize(n int) Option {
	return func(s *Sampler) { s.maxPoolSize = n }
}

// WithRand sets the randomness source. Used by tests for
// deterministic draws.
func WithRand(r *rand.Rand) Option {
	return func(s *Sampler) { s.rng = r }
}

// WithLogger sets the logger used for per-range warnings.
func WithLogger(l *logging.Logger) Option {
	return func(s *Sampler) { s.logger = l }
}

// Sampler expands CIDR ranges and draws unique random host addresses.
// A Sampler is not safe for concurrent use; each invocation is a pure
// computation given its inputs and the randomness source.
type Sampler struct {
	maxPoolSize int
	rng         *rand.Rand
	logger      *logging.Logger
}

// New creates a sampler with the given options.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		maxPoolSize: DefaultMaxPoolSize,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // sampling, not crypto
		logger:      logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample draws count unique random addresses from the given CIDR
// ranges using a default sampler. See Sampler.Sample for the contract.
func Sample(ranges []string, count int) (string, error) {
	return New().Sample(ranges, count)
}

// Sample draws count unique random addresses from the pooled usable
// hosts of the given CIDR ranges and returns them comma-joined in
// unspecified order.
//
// Count must lie in [MinCount, MaxCount]; a violation fails before any
// range is processed. Malformed ranges are skipped with a warning. An
// empty pool yields an empty string, not an error. When the pool holds
// fewer addresses than requested, every address is returned once and a
// warning is logged.
func (s *Sampler) Sample(ranges []string, count int) (string, error) {
	req := Request{Ranges: ranges, Count: count}
	if err := validate.Struct(req); err != nil {
		return "", errors.ErrInvalidCount(count, MinCount, MaxCount)
	}

	pool := s.buildPool(ranges)
	if len(pool) == 0 {
		return "", nil
	}

	if count > len(pool) {
		s.logger.Warn("requested count exceeds available addresses, returning all unique addresses",
			"requested", count,
			"available", len(pool))
		count = len(pool)
	}

	return strings.Join(s.draw(pool, count), ","), nil
}

// buildPool expands every valid range into the cumulative host pool.
// Addresses from different ranges are pooled without cross-range
// deduplication; overlap between supplied ranges is the caller's
// concern.
func (s *Sampler) buildPool(ranges []string) []uint32 {
	var pool []uint32
	for _, ipRange := range ranges {
		block, err := parseHostBlock(ipRange)
		if err != nil {
			s.logger.WarnSample("skipping invalid IP range", ipRange, "error", err)
			continue
		}

		if uint64(len(pool))+block.size() > uint64(s.maxPoolSize) {
			s.logger.WarnSample("skipping range, host pool would exceed limit", ipRange,
				"range_hosts", block.size(),
				"pool_limit", s.maxPoolSize)
			continue
		}

		for addr := block.first; ; addr++ {
			pool = append(pool, addr)
			if addr == block.last {
				break
			}
		}
	}
	return pool
}

// draw performs a partial Fisher-Yates shuffle and formats the first
// count entries. Linear in count regardless of how close count is to
// the pool size.
func (s *Sampler) draw(pool []uint32, count int) []string {
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		out = append(out, formatAddr(pool[i]))
	}
	return out
}
