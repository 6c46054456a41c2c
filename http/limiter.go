package http

import (
	"context"
	"net/url"
	"sync"

	"github.com/AndKraev/hotelweather"
	"golang.org/x/time/rate"
)

// HostLimiter provides per-host rate limiting using token buckets. It creates
// a separate limiter for each host, allowing concurrent requests to different
// APIs while pacing requests within each one.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter with the specified requests per second
// limit. Each host gets its own limiter with a burst of 1 (no bursting).
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

// Ensure ThrottledTransport implements hotelweather.Transport.
var _ hotelweather.Transport = (*ThrottledTransport)(nil)

// ThrottledTransport waits on a per-host limiter before delegating.
type ThrottledTransport struct {
	next    hotelweather.Transport
	limiter *HostLimiter
}

// NewThrottledTransport creates a ThrottledTransport around next.
func NewThrottledTransport(next hotelweather.Transport, limiter *HostLimiter) *ThrottledTransport {
	return &ThrottledTransport{next: next, limiter: limiter}
}

// Do waits for the target host's rate limit and delegates.
func (t *ThrottledTransport) Do(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if err := t.limiter.Wait(ctx, u.Host); err != nil {
		return "", err
	}
	return t.next.Do(ctx, rawURL)
}
