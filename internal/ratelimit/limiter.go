// Package ratelimit throttles calls to the LLM provider.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Completer is the call being throttled
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Limiter wraps a Completer and holds every call until a token is available
type Limiter struct {
	next    Completer
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewLimiter creates a limiter allowing requestsPerMinute calls with a burst of one.
// A non-positive rate disables throttling.
func NewLimiter(next Completer, requestsPerMinute int, logger zerolog.Logger) *Limiter {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}

	return &Limiter{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With().Str("component", "ratelimit").Logger(),
	}
}

// Complete waits for a token and then forwards the call
func (l *Limiter) Complete(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait aborted: %w", err)
	}

	if waited := time.Since(startTime); waited > 10*time.Millisecond {
		l.logger.Debug().
			Dur("waited", waited).
			Msg("Request delayed by rate limit")
	}

	return l.next.Complete(ctx, prompt)
}
