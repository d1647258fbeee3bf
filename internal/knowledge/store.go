// Package knowledge stores embedded site content in PostgreSQL and retrieves
// it by vector similarity. It backs the chatbot's retrieval step.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/firebase/genkit/go/ai"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"
)

// Querier defines the database operations the store needs. The interface is
// defined here, by the consumer, so tests can substitute a mock and the
// production implementation can live next to the pool wiring.
type Querier interface {
	// UpsertChunk inserts or replaces a chunk.
	UpsertChunk(ctx context.Context, arg UpsertChunkParams) error

	// SearchChunks returns the chunks nearest to the query embedding.
	SearchChunks(ctx context.Context, arg SearchChunksParams) ([]SearchChunksRow, error)

	// CountChunks counts all stored chunks.
	CountChunks(ctx context.Context) (int64, error)

	// DeleteAllChunks empties the collection.
	DeleteAllChunks(ctx context.Context) error
}

// UpsertChunkParams carries one chunk plus its embedding.
type UpsertChunkParams struct {
	ID        string
	Content   string
	URL       string
	Embedding *pgvector.Vector
}

// SearchChunksParams carries a query embedding and result limit.
type SearchChunksParams struct {
	QueryEmbedding *pgvector.Vector
	ResultLimit    int32
}

// SearchChunksRow is one vector search hit.
type SearchChunksRow struct {
	ID         string
	Content    string
	URL        string
	CreatedAt  pgtype.Timestamptz
	Similarity float32
}

// Store manages chunks with vector search. It generates embeddings through the
// configured embedder and delegates persistence to the Querier.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	queries  Querier
	embedder ai.Embedder
	logger   *slog.Logger
}

// New creates a Store. A nil logger falls back to slog.Default.
func New(querier Querier, embedder ai.Embedder, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		queries:  querier,
		embedder: embedder,
		logger:   logger,
	}
}

// Add embeds the chunk text and upserts it.
func (s *Store) Add(ctx context.Context, chunk Chunk) error {
	embedding, err := s.embed(ctx, chunk.Text)
	if err != nil {
		return fmt.Errorf("failed to embed chunk %q: %w", chunk.ID, err)
	}

	err = s.queries.UpsertChunk(ctx, UpsertChunkParams{
		ID:        chunk.ID,
		Content:   chunk.Text,
		URL:       chunk.URL,
		Embedding: embedding,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert chunk %q: %w", chunk.ID, err)
	}

	s.logger.Debug("added chunk", "id", chunk.ID, "url", chunk.URL, "content_length", len(chunk.Text))
	return nil
}

// Search embeds the query and returns the nearest chunks ordered by
// similarity. A per-call timeout keeps slow vector scans from blocking the
// chat pipeline.
func (s *Store) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)

	queryCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	embedding, err := s.embed(queryCtx, query)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("embedding generation timeout: %w", err)
		}
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	topK := cfg.topK
	if topK > math.MaxInt32 {
		topK = math.MaxInt32
	}
	rows, err := s.queries.SearchChunks(queryCtx, SearchChunksParams{
		QueryEmbedding: embedding,
		ResultLimit:    int32(topK),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("search query timeout: %w", err)
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		c := Chunk{
			ID:   row.ID,
			Text: row.Content,
			URL:  row.URL,
		}
		if row.CreatedAt.Valid {
			c.CreatedAt = row.CreatedAt.Time
		}
		results = append(results, Result{Chunk: c, Similarity: row.Similarity})
	}
	return results, nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	count, err := s.queries.CountChunks(ctx)
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	if count > math.MaxInt {
		return 0, fmt.Errorf("chunk count %d exceeds platform int capacity", count)
	}
	return int(count), nil
}

// DeleteAll empties the collection. The indexer calls this before
// repopulating so stale content never survives a re-index.
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := s.queries.DeleteAllChunks(ctx); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}
	s.logger.Debug("cleared all chunks")
	return nil
}

func (s *Store) embed(ctx context.Context, text string) (*pgvector.Vector, error) {
	resp, err := s.embedder.Embed(ctx, &ai.EmbedRequest{
		Input: []*ai.Document{
			{Content: []*ai.Part{ai.NewTextPart(text)}},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return nil, errors.New("empty embedding returned")
	}
	v := pgvector.NewVector(resp.Embeddings[0].Embedding)
	return &v, nil
}
