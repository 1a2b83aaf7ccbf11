// Package ratelimit wraps a text generator with client-side throttling.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Ensure Generator implements the interface.
var _ driven.TextGenerator = (*Generator)(nil)

// DefaultBackoff is the pause after the provider reports throttling.
const DefaultBackoff = 30 * time.Second

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64

	// Burst is the maximum burst size.
	Burst int

	// Backoff is how long to pause after a throttled response (default: 30s).
	Backoff time.Duration
}

// Generator limits calls to an underlying text generator.
// It uses a token bucket and backs off after the provider throttles a call.
type Generator struct {
	next    driven.TextGenerator
	limiter *rate.Limiter
	backoff time.Duration
	now     func() time.Time

	mu      sync.Mutex
	retryAt time.Time
}

// Wrap returns next limited by cfg. A non-positive rate returns next unchanged.
func Wrap(next driven.TextGenerator, cfg Config) driven.TextGenerator {
	if next == nil || cfg.RequestsPerSecond <= 0 {
		return next
	}
	return New(next, cfg)
}

// New creates a rate limited generator.
func New(next driven.TextGenerator, cfg Config) *Generator {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	return &Generator{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		backoff: cfg.Backoff,
		now:     time.Now,
	}
}

// Wait blocks until a call may be made without exceeding the limit.
// It also respects any backoff set after a throttled response.
func (g *Generator) Wait(ctx context.Context) error {
	g.mu.Lock()
	retryAt := g.retryAt
	g.mu.Unlock()

	if wait := retryAt.Sub(g.now()); wait > 0 {
		logger.Debug("Provider throttled, waiting %s", wait.Round(time.Millisecond))
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return g.limiter.Wait(ctx)
}

// Generate waits for a token, then delegates.
func (g *Generator) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := g.Wait(ctx); err != nil {
		return "", err
	}

	text, err := g.next.Generate(ctx, prompt, opts)
	if errors.Is(err, driven.ErrRateLimited) {
		g.mu.Lock()
		g.retryAt = g.now().Add(g.backoff)
		g.mu.Unlock()
		logger.Warn("Provider throttled %s, backing off for %s", g.next.ModelName(), g.backoff)
	}
	return text, err
}

// ModelName returns the wrapped model name.
func (g *Generator) ModelName() string {
	return g.next.ModelName()
}

// Ping delegates without consuming a token.
func (g *Generator) Ping(ctx context.Context) error {
	return g.next.Ping(ctx)
}

// Close closes the wrapped generator.
func (g *Generator) Close() error {
	return g.next.Close()
}
