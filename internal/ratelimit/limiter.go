// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles browser navigations against the single target host.
// It is a politeness floor on request rate, not a retry mechanism; settle
// delays after UI actions are handled separately by the scrape loop.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a navigation limiter with the given rate and burst.
func New(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1.0
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until the next navigation may proceed, or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.limiter.Wait(ctx)
}

// Allow reports whether a navigation may proceed immediately.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
