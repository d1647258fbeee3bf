package knowledge

import "time"

// Chunk is one indexed slice of site content.
type Chunk struct {
	ID        string    // Unique identifier
	Text      string    // Chunk text content
	URL       string    // Page the chunk was extracted from
	CreatedAt time.Time // Indexing timestamp
}

// Result is a single search result with its similarity score.
type Result struct {
	Chunk      Chunk
	Similarity float32 // Cosine similarity (0-1)
}

// SearchOption configures search behavior using the functional options pattern.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK    int
	timeout time.Duration
}

// WithTopK sets the maximum number of results to return. Default is 4.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithTimeout overrides the per-search timeout. Default is 10 seconds.
func WithTimeout(d time.Duration) SearchOption {
	return func(c *searchConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{
		topK:    4,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
