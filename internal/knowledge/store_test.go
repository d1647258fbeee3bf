package knowledge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/jackc/pgx/v5/pgtype"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockEmbedder implements ai.Embedder for testing
type mockEmbedder struct {
	delay         time.Duration
	embedErr      error
	returnEmpty   bool
	embeddings    []float32
	callCount     int
	lastInputText string
}

func (m *mockEmbedder) Name() string { return "mock-embedder" }

func (m *mockEmbedder) Register(r api.Registry) {}

func (m *mockEmbedder) Embed(ctx context.Context, req *ai.EmbedRequest) (*ai.EmbedResponse, error) {
	m.callCount++
	if len(req.Input) > 0 && len(req.Input[0].Content) > 0 {
		m.lastInputText = req.Input[0].Content[0].Text
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.returnEmpty {
		return &ai.EmbedResponse{Embeddings: []*ai.Embedding{{Embedding: []float32{}}}}, nil
	}
	embeddings := m.embeddings
	if embeddings == nil {
		embeddings = []float32{0.1, 0.2, 0.3}
	}
	return &ai.EmbedResponse{Embeddings: []*ai.Embedding{{Embedding: embeddings}}}, nil
}

// mockQuerier implements Querier for testing
type mockQuerier struct {
	upsertErr error
	searchErr error
	countErr  error
	deleteErr error

	searchResults []SearchChunksRow
	countResult   int64

	upsertCalls      int
	searchCalls      int
	countCalls       int
	deleteCalls      int
	lastUpsertParams UpsertChunkParams
	lastSearchParams SearchChunksParams
}

func (m *mockQuerier) UpsertChunk(ctx context.Context, arg UpsertChunkParams) error {
	m.upsertCalls++
	m.lastUpsertParams = arg
	return m.upsertErr
}

func (m *mockQuerier) SearchChunks(ctx context.Context, arg SearchChunksParams) ([]SearchChunksRow, error) {
	m.searchCalls++
	m.lastSearchParams = arg
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults, nil
}

func (m *mockQuerier) CountChunks(ctx context.Context) (int64, error) {
	m.countCalls++
	return m.countResult, m.countErr
}

func (m *mockQuerier) DeleteAllChunks(ctx context.Context) error {
	m.deleteCalls++
	return m.deleteErr
}

// ============================================================================
// Store.Add Tests
// ============================================================================

func TestStoreAdd(t *testing.T) {
	querier := &mockQuerier{}
	embed := &mockEmbedder{embeddings: []float32{0.5, 0.6, 0.7}}

	store := New(querier, embed, nil)

	chunk := Chunk{
		ID:   "chunk-1",
		Text: "Olu Kareem is a full stack developer.",
		URL:  "https://www.olukareem.me/",
	}

	if err := store.Add(context.Background(), chunk); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if embed.callCount != 1 {
		t.Errorf("expected embedder to be called once, got %d", embed.callCount)
	}
	if embed.lastInputText != chunk.Text {
		t.Errorf("embedder received wrong content: got %q, want %q", embed.lastInputText, chunk.Text)
	}
	if querier.upsertCalls != 1 {
		t.Errorf("expected upsert to be called once, got %d", querier.upsertCalls)
	}

	params := querier.lastUpsertParams
	if params.ID != chunk.ID {
		t.Errorf("upsert ID mismatch: got %q, want %q", params.ID, chunk.ID)
	}
	if params.URL != chunk.URL {
		t.Errorf("upsert URL mismatch: got %q, want %q", params.URL, chunk.URL)
	}
	if params.Embedding == nil {
		t.Fatal("embedding is nil")
	}
	if len(params.Embedding.Slice()) != 3 {
		t.Errorf("expected 3-dimension embedding, got %d", len(params.Embedding.Slice()))
	}
}

func TestStoreAddEmbeddingError(t *testing.T) {
	tests := []struct {
		name        string
		embedErr    error
		returnEmpty bool
	}{
		{name: "embedder returns error", embedErr: errors.New("embedding service down")},
		{name: "embedder returns empty vector", returnEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			querier := &mockQuerier{}
			embed := &mockEmbedder{embedErr: tt.embedErr, returnEmpty: tt.returnEmpty}
			store := New(querier, embed, nil)

			err := store.Add(context.Background(), Chunk{ID: "x", Text: "text"})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if querier.upsertCalls != 0 {
				t.Errorf("upsert should not be called on embed failure, got %d calls", querier.upsertCalls)
			}
		})
	}
}

func TestStoreAddUpsertError(t *testing.T) {
	querier := &mockQuerier{upsertErr: errors.New("connection refused")}
	store := New(querier, &mockEmbedder{}, nil)

	err := store.Add(context.Background(), Chunk{ID: "x", Text: "text"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// ============================================================================
// Store.Search Tests
// ============================================================================

func TestStoreSearch(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	querier := &mockQuerier{
		searchResults: []SearchChunksRow{
			{
				ID:         "chunk-1",
				Content:    "Work history at Splice.",
				URL:        "https://www.olukareem.me/work",
				CreatedAt:  pgtype.Timestamptz{Time: now, Valid: true},
				Similarity: 0.92,
			},
			{
				ID:         "chunk-2",
				Content:    "Projects overview.",
				URL:        "https://www.olukareem.me/projects",
				Similarity: 0.81,
			},
		},
	}
	embed := &mockEmbedder{}
	store := New(querier, embed, nil)

	results, err := store.Search(context.Background(), "where did Olu work?")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "chunk-1" {
		t.Errorf("unexpected first result: %q", results[0].Chunk.ID)
	}
	if results[0].Similarity != 0.92 {
		t.Errorf("similarity mismatch: got %v", results[0].Similarity)
	}
	if !results[0].Chunk.CreatedAt.Equal(now) {
		t.Errorf("created_at mismatch: got %v", results[0].Chunk.CreatedAt)
	}
	if !results[1].Chunk.CreatedAt.IsZero() {
		t.Error("expected zero created_at for invalid timestamp")
	}

	// default topK
	if querier.lastSearchParams.ResultLimit != 4 {
		t.Errorf("expected default limit 4, got %d", querier.lastSearchParams.ResultLimit)
	}
}

func TestStoreSearchWithTopK(t *testing.T) {
	querier := &mockQuerier{}
	store := New(querier, &mockEmbedder{}, nil)

	if _, err := store.Search(context.Background(), "query", WithTopK(10)); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if querier.lastSearchParams.ResultLimit != 10 {
		t.Errorf("expected limit 10, got %d", querier.lastSearchParams.ResultLimit)
	}
}

func TestStoreSearchEmbeddingTimeout(t *testing.T) {
	querier := &mockQuerier{}
	embed := &mockEmbedder{delay: 200 * time.Millisecond}
	store := New(querier, embed, nil)

	_, err := store.Search(context.Background(), "query", WithTimeout(10*time.Millisecond))
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if querier.searchCalls != 0 {
		t.Errorf("search should not run after embed timeout, got %d calls", querier.searchCalls)
	}
}

func TestStoreSearchQueryError(t *testing.T) {
	querier := &mockQuerier{searchErr: errors.New("relation does not exist")}
	store := New(querier, &mockEmbedder{}, nil)

	if _, err := store.Search(context.Background(), "query"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

// ============================================================================
// Store.Count / Store.DeleteAll Tests
// ============================================================================

func TestStoreCount(t *testing.T) {
	querier := &mockQuerier{countResult: 42}
	store := New(querier, &mockEmbedder{}, nil)

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 42 {
		t.Errorf("expected 42, got %d", count)
	}
}

func TestStoreCountError(t *testing.T) {
	querier := &mockQuerier{countErr: errors.New("boom")}
	store := New(querier, &mockEmbedder{}, nil)

	if _, err := store.Count(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestStoreDeleteAll(t *testing.T) {
	querier := &mockQuerier{}
	store := New(querier, &mockEmbedder{}, nil)

	if err := store.DeleteAll(context.Background()); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if querier.deleteCalls != 1 {
		t.Errorf("expected one delete call, got %d", querier.deleteCalls)
	}
}

func TestStoreDeleteAllError(t *testing.T) {
	querier := &mockQuerier{deleteErr: errors.New("boom")}
	store := New(querier, &mockEmbedder{}, nil)

	if err := store.DeleteAll(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
