package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/scrape"
	"golang.org/x/time/rate"
)

var _ scrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-host rate limiting using token buckets so that
// concurrent workers do not overwhelm a single target host. Requests to
// different hosts never wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second to
// each host. Burst is 1 unless changed with WithBurst.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    1,
	}
}

// WithBurst sets how many requests per host may be issued back to back.
func (d *DomainLimiter) WithBurst(n int) *DomainLimiter {
	if n > 0 {
		d.burst = n
	}
	return d
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is done before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	key := strings.ToLower(host)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
