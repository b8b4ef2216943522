// Package ratelimiter throttles calls to the external data provider.
package ratelimiter

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// RateLimiterInterface limits how often an operation such as an API call may run.
type RateLimiterInterface interface {
	WaitIfNeeded(ctx context.Context) error
}

// RateLimiter allows up to limit calls per interval, spread evenly.
type RateLimiter struct {
	limiter  *rate.Limiter
	limit    int
	interval time.Duration
}

// NewRateLimiter creates a RateLimiter. A non-positive limit disables throttling.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{limit: limit, interval: interval}
	if limit > 0 && interval > 0 {
		rl.limiter = rate.NewLimiter(rate.Every(interval/time.Duration(limit)), 1)
	}
	return rl
}

// WaitIfNeeded blocks until the next call is allowed or ctx is done.
func (rl *RateLimiter) WaitIfNeeded(ctx context.Context) error {
	if rl.limiter == nil {
		return nil
	}
	r := rl.limiter.Reserve()
	if delay := r.Delay(); delay > 0 {
		log.Debug().Int("limit", rl.limit).Dur("interval", rl.interval).Dur("sleep", delay).Msg("rate limit reached, waiting")
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			r.Cancel()
			return ctx.Err()
		}
	}
	return nil
}
