package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/olukareem/portfolio/internal/knowledge"
	"github.com/olukareem/portfolio/internal/testutil"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockIndexStore implements IndexStore for testing
type mockIndexStore struct {
	addErr    error
	deleteErr error

	added       []knowledge.Chunk
	deleteCalls int
}

func (m *mockIndexStore) Add(ctx context.Context, chunk knowledge.Chunk) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, chunk)
	return nil
}

func (m *mockIndexStore) DeleteAll(ctx context.Context) error {
	m.deleteCalls++
	return m.deleteErr
}

func (m *mockIndexStore) Count(ctx context.Context) (int, error) {
	return len(m.added), nil
}

// mockUpsertStore implements IndexStore with upsert-by-ID semantics, the way
// the real store's ON CONFLICT DO UPDATE behaves.
type mockUpsertStore struct {
	chunks map[string]knowledge.Chunk
}

func (m *mockUpsertStore) Add(ctx context.Context, chunk knowledge.Chunk) error {
	if m.chunks == nil {
		m.chunks = map[string]knowledge.Chunk{}
	}
	m.chunks[chunk.ID] = chunk
	return nil
}

func (m *mockUpsertStore) DeleteAll(ctx context.Context) error {
	m.chunks = map[string]knowledge.Chunk{}
	return nil
}

func (m *mockUpsertStore) Count(ctx context.Context) (int, error) {
	return len(m.chunks), nil
}

// mockFlusher implements CacheFlusher for testing
type mockFlusher struct {
	flushErr   error
	flushCalls int
}

func (m *mockFlusher) FlushAll(ctx context.Context) error {
	m.flushCalls++
	return m.flushErr
}

func testPages() fstest.MapFS {
	return fstest.MapFS{
		"pages/index.md": {Data: []byte("# Home\n\nWelcome to the portfolio.")},
		"pages/about.md": {Data: []byte("# About\n\nOlu is a full stack developer.")},
	}
}

// ============================================================================
// Indexer Tests
// ============================================================================

func TestIndexerRun(t *testing.T) {
	store := &mockIndexStore{}
	flusher := &mockFlusher{}
	ix := NewIndexer(store, flusher, "https://www.olukareem.me", 1000, 200, testutil.DiscardLogger())

	total, err := ix.Run(context.Background(), testPages())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if flusher.flushCalls != 1 {
		t.Errorf("expected 1 cache flush, got %d", flusher.flushCalls)
	}
	if store.deleteCalls != 1 {
		t.Errorf("expected 1 store clear, got %d", store.deleteCalls)
	}
	if total != len(store.added) {
		t.Errorf("reported %d chunks, stored %d", total, len(store.added))
	}
	if total < 3 {
		// two pages plus the rendered resume
		t.Errorf("expected at least 3 chunks, got %d", total)
	}
}

func TestIndexerDerivesPageURLs(t *testing.T) {
	store := &mockIndexStore{}
	ix := NewIndexer(store, nil, "https://www.olukareem.me", 1000, 200, testutil.DiscardLogger())

	if _, err := ix.Run(context.Background(), testPages()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	urls := map[string]bool{}
	for _, c := range store.added {
		if c.URL == "" {
			t.Errorf("chunk %s has empty URL", c.ID)
		}
		urls[c.URL] = true
	}
	if !urls["https://www.olukareem.me/"] {
		t.Error("index.md should map to the site root")
	}
	if !urls["https://www.olukareem.me/about"] {
		t.Error("about.md should map to /about")
	}
}

func TestIndexerIncludesResume(t *testing.T) {
	store := &mockIndexStore{}
	ix := NewIndexer(store, nil, "https://www.olukareem.me", 1000, 200, testutil.DiscardLogger())

	if _, err := ix.Run(context.Background(), fstest.MapFS{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var found bool
	for _, c := range store.added {
		if strings.Contains(c.Text, "Splice") {
			found = true
			break
		}
	}
	if !found {
		t.Error("resume content missing from index")
	}
}

func TestIndexerRootURLSourcesKeepDistinctIDs(t *testing.T) {
	// the index page and the rendered resume both map to the site root; with
	// upsert semantics a URL-seeded ID would let the resume overwrite the
	// index page's chunks
	store := &mockUpsertStore{}
	ix := NewIndexer(store, nil, "https://www.olukareem.me", 1000, 200, testutil.DiscardLogger())

	pages := fstest.MapFS{
		"pages/index.md": {Data: []byte("# Home\n\nWelcome to the portfolio.")},
	}
	total, err := ix.Run(context.Background(), pages)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if total != len(store.chunks) {
		t.Errorf("reported %d chunks but stored %d: IDs collided", total, len(store.chunks))
	}

	var indexPage, resumeData bool
	for _, c := range store.chunks {
		if strings.Contains(c.Text, "Welcome to the portfolio") {
			indexPage = true
		}
		if strings.Contains(c.Text, "Splice") {
			resumeData = true
		}
	}
	if !indexPage {
		t.Error("index page chunks missing after indexing the resume")
	}
	if !resumeData {
		t.Error("resume chunks missing from index")
	}
}

func TestIndexerFlushFailureContinues(t *testing.T) {
	store := &mockIndexStore{}
	flusher := &mockFlusher{flushErr: errors.New("redis down")}
	ix := NewIndexer(store, flusher, "https://www.olukareem.me", 1000, 200, testutil.DiscardLogger())

	if _, err := ix.Run(context.Background(), testPages()); err != nil {
		t.Fatalf("flush failure must not abort indexing: %v", err)
	}
	if len(store.added) == 0 {
		t.Error("no chunks stored after flush failure")
	}
}

func TestIndexerClearFailureAborts(t *testing.T) {
	store := &mockIndexStore{deleteErr: errors.New("db down")}
	ix := NewIndexer(store, nil, "https://www.olukareem.me", 1000, 200, testutil.DiscardLogger())

	if _, err := ix.Run(context.Background(), testPages()); err == nil {
		t.Fatal("expected error when store clear fails")
	}
	if len(store.added) != 0 {
		t.Errorf("no chunks should be stored after clear failure, got %d", len(store.added))
	}
}

func TestIndexerDeterministicChunkIDs(t *testing.T) {
	run := func() []knowledge.Chunk {
		store := &mockIndexStore{}
		ix := NewIndexer(store, nil, "https://www.olukareem.me", 1000, 200, testutil.DiscardLogger())
		if _, err := ix.Run(context.Background(), testPages()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return store.added
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d ID changed between runs: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}
