// Package llmcache caches model responses keyed by model name and prompt.
// A cache hit skips the model call entirely, which matters for repeated
// questions against static site content.
package llmcache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/olukareem/portfolio/internal/kv"
)

// KV is the key-value backend the cache needs. *kv.Client satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// Cache wraps a KV backend. A nil Cache or one constructed without a backend
// degrades to a no-op: lookups miss, updates are dropped. The chat pipeline
// must keep working when Redis is down.
type Cache struct {
	kv     KV
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a Cache. backend may be nil, in which case every operation is a
// no-op. A zero ttl caches entries without expiration.
func New(backend KV, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{kv: backend, ttl: ttl, logger: logger}
}

// Connected reports whether the backend is reachable.
func (c *Cache) Connected(ctx context.Context) bool {
	if c == nil || c.kv == nil {
		return false
	}
	return c.kv.Ping(ctx) == nil
}

// Lookup returns the cached response for (llmKey, prompt) and whether it was
// found. Backend errors are logged and reported as misses.
func (c *Cache) Lookup(ctx context.Context, llmKey, prompt string) (string, bool) {
	if c == nil || c.kv == nil {
		return "", false
	}
	val, err := c.kv.Get(ctx, cacheKey(llmKey, prompt))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			c.logger.Warn("cache lookup failed", "error", err)
		}
		return "", false
	}
	return val, true
}

// Update stores a response for (llmKey, prompt). Failures are logged, not
// returned; caching is best effort.
func (c *Cache) Update(ctx context.Context, llmKey, prompt, response string) {
	if c == nil || c.kv == nil {
		return
	}
	if err := c.kv.Set(ctx, cacheKey(llmKey, prompt), response, c.ttl); err != nil {
		c.logger.Warn("cache update failed", "error", err)
	}
}

func cacheKey(llmKey, prompt string) string {
	return llmKey + ":" + prompt
}
