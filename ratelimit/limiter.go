// Package ratelimit provides a token-bucket rate limiter backed by
// golang.org/x/time/rate, used to gate every upstream API call.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket limiter that decides when an upstream
// request may proceed.
type Limiter struct {
	lim *rate.Limiter
}

// NewLimiter creates a Limiter that permits rps requests per second with the
// given burst size.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{lim: rate.NewLimiter(rate.Limit(rps), burst)}
}

// NewWindowLimiter creates a Limiter that permits at most permits requests
// per window, with a burst of the full window allowance. The default API
// policy is 5 permits per 5-second window.
func NewWindowLimiter(permits int, window time.Duration) *Limiter {
	return NewLimiter(float64(permits)/window.Seconds(), permits)
}

// Allow reports whether a single request may proceed, consuming a token
// when it does.
func (l *Limiter) Allow() bool {
	return l.lim.Allow()
}

// Wait blocks until a token is available or ctx is done. It never fails
// for lack of capacity, only on context cancellation.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// HasCapacity reports whether a token is available right now, without
// consuming one. Used only for warning-log throttling, never correctness.
func (l *Limiter) HasCapacity() bool {
	return l.lim.Tokens() >= 1
}
