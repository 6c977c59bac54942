package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hirewiz/hirewiz/internal/ai"
)

// ModelRateLimiter enforces a minimum delay between requests to the same model.
type ModelRateLimiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: model name
	minDelay time.Duration
}

// NewModelRateLimiter creates a rate limiter that enforces minDelay between
// consecutive requests to the same model.
func NewModelRateLimiter(minDelay time.Duration) *ModelRateLimiter {
	return &ModelRateLimiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to the given model.
// Returns an error if the context is cancelled while waiting.
func (r *ModelRateLimiter) Wait(ctx context.Context, mdl string) error {
	r.mu.Lock()
	last, ok := r.lastCall[mdl]
	now := time.Now()

	if !ok {
		// First request for this model — no wait needed.
		r.lastCall[mdl] = now
		r.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= r.minDelay {
		// Enough time has passed — proceed immediately.
		r.lastCall[mdl] = now
		r.mu.Unlock()
		return nil
	}

	// Need to wait for the remainder.
	remaining := r.minDelay - elapsed
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", mdl, ctx.Err())
	case <-time.After(remaining):
	}

	// Record the actual time after waiting.
	r.mu.Lock()
	r.lastCall[mdl] = time.Now()
	r.mu.Unlock()

	return nil
}

// RateLimitedProvider is a decorator that enforces model-level rate limiting
// before delegating to the wrapped LLMProvider. All copilots sharing an API
// key should share the same limiter instance.
type RateLimitedProvider struct {
	inner   ai.LLMProvider
	limiter *ModelRateLimiter
}

// NewRateLimitedProvider wraps an LLMProvider with model-level rate limiting.
func NewRateLimitedProvider(inner ai.LLMProvider, limiter *ModelRateLimiter) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:   inner,
		limiter: limiter,
	}
}

// Complete waits for the rate limiter to allow a request, then delegates to
// the wrapped provider.
func (p *RateLimitedProvider) Complete(ctx context.Context, req ai.Request) (string, error) {
	if err := p.limiter.Wait(ctx, req.Model); err != nil {
		return "", err
	}
	return p.inner.Complete(ctx, req)
}
