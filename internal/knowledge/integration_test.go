//go:build integration
// +build integration

package knowledge_test

import (
	"context"
	"testing"

	"github.com/firebase/genkit/go/genkit"

	"github.com/olukareem/portfolio/internal/knowledge"
	"github.com/olukareem/portfolio/internal/testutil"
)

// Run with: go test -tags=integration ./internal/knowledge -v

func TestStoreRoundTrip_Integration(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.SetupTestDB(t)

	g := genkit.Init(ctx)
	embedder := testutil.NewMockEmbedder(768).Register(g)

	store := knowledge.New(knowledge.NewQueries(testDB.Pool), embedder, testutil.DiscardLogger())

	chunks := []knowledge.Chunk{
		{ID: "chunk-1", Text: "Olu worked at Splice as a software engineer.", URL: "https://example.test/about"},
		{ID: "chunk-2", Text: "The contact form relays messages over SES.", URL: "https://example.test/contact"},
		{ID: "chunk-3", Text: "Splice Bridge streams audio into the DAW.", URL: "https://example.test/"},
	}
	for _, c := range chunks {
		if err := store.Add(ctx, c); err != nil {
			t.Fatalf("Add(%s): %v", c.ID, err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count(): %v", err)
	}
	if count != len(chunks) {
		t.Fatalf("Count() = %d, want %d", count, len(chunks))
	}

	// An exact-content query embeds to the identical vector, so the matching
	// chunk must rank first with similarity near 1.
	results, err := store.Search(ctx, "Olu worked at Splice as a software engineer.")
	if err != nil {
		t.Fatalf("Search(): %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search() returned no results")
	}
	if results[0].Chunk.ID != "chunk-1" {
		t.Errorf("top result = %q, want chunk-1", results[0].Chunk.ID)
	}
	if results[0].Similarity < 0.99 {
		t.Errorf("top similarity = %f, want ~1.0", results[0].Similarity)
	}

	// Upsert on the same ID must replace, not duplicate.
	if err := store.Add(ctx, knowledge.Chunk{ID: "chunk-1", Text: "updated text", URL: "https://example.test/about"}); err != nil {
		t.Fatalf("Add(upsert): %v", err)
	}
	count, err = store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() after upsert: %v", err)
	}
	if count != len(chunks) {
		t.Errorf("Count() after upsert = %d, want %d", count, len(chunks))
	}

	if err := store.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll(): %v", err)
	}
	count, err = store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() after DeleteAll: %v", err)
	}
	if count != 0 {
		t.Errorf("Count() after DeleteAll = %d, want 0", count)
	}
}
