package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter gates outbound API calls to stay inside a provider's request quota.
// Wait blocks until a token is available or the context ends.
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	Wait(ctx context.Context) error
}

type limiter struct {
	inner *rate.Limiter
}

// New creates a token bucket limiter allowing requestsPerSecond sustained
// throughput with the given burst. A non-positive rate disables limiting.
func New(requestsPerSecond float64, burst int) Limiter {
	if requestsPerSecond <= 0 {
		return noopLimiter{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &limiter{inner: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

func (l *limiter) Wait(ctx context.Context) error {
	return l.inner.Wait(ctx)
}

// noopLimiter admits every request immediately
type noopLimiter struct{}

func (noopLimiter) Wait(ctx context.Context) error {
	return ctx.Err()
}
