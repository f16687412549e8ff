package capture

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/cardmark"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

var _ cardmark.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-site rate limiting using token buckets.
// Hosts sharing a registrable domain (news.ycombinator.com and
// ycombinator.com) share one bucket.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each site gets its own limiter with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := siteKey(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// siteKey returns the registrable domain (eTLD+1) of host, or the host
// itself for IPs, single-label hosts and public suffixes.
func siteKey(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	key, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return key
}
