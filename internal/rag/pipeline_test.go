package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/firebase/genkit/go/genkit"

	"github.com/olukareem/portfolio/internal/knowledge"
	"github.com/olukareem/portfolio/internal/testutil"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockRetriever implements Retriever for testing
type mockRetriever struct {
	results   []knowledge.Result
	searchErr error

	searchCalls int
	lastQuery   string
}

func (m *mockRetriever) Search(ctx context.Context, query string, opts ...knowledge.SearchOption) ([]knowledge.Result, error) {
	m.searchCalls++
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

// mockCache implements ResponseCache for testing
type mockCache struct {
	store map[string]string

	lookupCalls int
	updateCalls int
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string]string{}}
}

func (m *mockCache) Lookup(ctx context.Context, llmKey, prompt string) (string, bool) {
	m.lookupCalls++
	v, ok := m.store[llmKey+":"+prompt]
	return v, ok
}

func (m *mockCache) Update(ctx context.Context, llmKey, prompt, response string) {
	m.updateCalls++
	m.store[llmKey+":"+prompt] = response
}

func splicedChunk() knowledge.Result {
	return knowledge.Result{
		Chunk: knowledge.Chunk{
			ID:   "c1",
			Text: "Olu worked at Splice as a software engineer from 2021 to 2024.",
			URL:  "https://www.olukareem.me/",
		},
		Similarity: 0.9,
	}
}

// ============================================================================
// Pipeline Tests
// ============================================================================

func TestPipelineFirstQuestionSkipsRephrase(t *testing.T) {
	g := genkit.Init(context.Background())
	llm := testutil.NewMockLLM("I can tell you about Olu's work.")
	llm.Register(g)

	store := &mockRetriever{results: []knowledge.Result{splicedChunk()}}
	p := NewPipeline(g, testutil.MockModelName, store, nil, 4, testutil.DiscardLogger())

	answer, err := p.Chat(context.Background(), nil, "Where did Olu work?", nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if answer == "" {
		t.Fatal("empty answer")
	}

	// no history: the question itself is the retrieval query and only the
	// generation call hits the model
	if store.lastQuery != "Where did Olu work?" {
		t.Errorf("retrieval used query %q, want the raw question", store.lastQuery)
	}
	if llm.CallCount() != 1 {
		t.Errorf("expected 1 model call, got %d", llm.CallCount())
	}
}

func TestPipelineRephrasesWithHistory(t *testing.T) {
	g := genkit.Init(context.Background())
	llm := testutil.NewMockLLM("He worked there for three years.")
	llm.AddResponse("generate a search query", "Olu Kareem Splice duration")
	llm.Register(g)

	store := &mockRetriever{results: []knowledge.Result{splicedChunk()}}
	p := NewPipeline(g, testutil.MockModelName, store, nil, 4, testutil.DiscardLogger())

	history := []Message{
		{Role: RoleUser, Text: "Where did Olu work?"},
		{Role: RoleModel, Text: "He worked at Splice."},
	}
	_, err := p.Chat(context.Background(), history, "How long was he there?", nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if store.lastQuery != "Olu Kareem Splice duration" {
		t.Errorf("retrieval used query %q, want the rephrased one", store.lastQuery)
	}
	if llm.CallCount() != 2 {
		t.Errorf("expected 2 model calls (rephrase + generate), got %d", llm.CallCount())
	}
}

func TestPipelineStuffsContextIntoSystemPrompt(t *testing.T) {
	g := genkit.Init(context.Background())
	llm := testutil.NewMockLLM("answer")
	llm.Register(g)

	store := &mockRetriever{results: []knowledge.Result{splicedChunk()}}
	p := NewPipeline(g, testutil.MockModelName, store, nil, 4, testutil.DiscardLogger())

	if _, err := p.Chat(context.Background(), nil, "question", nil); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	calls := llm.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	sys := calls[0].System
	if !strings.Contains(sys, "Splice") {
		t.Error("system prompt missing retrieved chunk text")
	}
	if !strings.Contains(sys, "https://www.olukareem.me/") {
		t.Error("system prompt missing chunk URL")
	}
	if !strings.Contains(sys, "Olu Kareem's personal assistant") {
		t.Error("system prompt missing persona")
	}
}

func TestPipelineStreams(t *testing.T) {
	g := genkit.Init(context.Background())
	llm := testutil.NewMockLLM("streamed answer text")
	llm.Register(g)

	store := &mockRetriever{results: []knowledge.Result{splicedChunk()}}
	p := NewPipeline(g, testutil.MockModelName, store, nil, 4, testutil.DiscardLogger())

	var streamed strings.Builder
	answer, err := p.Chat(context.Background(), nil, "question", func(ctx context.Context, text string) error {
		streamed.WriteString(text)
		return nil
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if streamed.String() != answer {
		t.Errorf("streamed %q does not match returned answer %q", streamed.String(), answer)
	}
	if answer != "streamed answer text" {
		t.Errorf("unexpected answer: %q", answer)
	}
}

func TestPipelineStoreUnavailable(t *testing.T) {
	g := genkit.Init(context.Background())
	llm := testutil.NewMockLLM("should never be used")
	llm.Register(g)

	store := &mockRetriever{searchErr: errors.New("connection refused")}
	p := NewPipeline(g, testutil.MockModelName, store, nil, 4, testutil.DiscardLogger())

	_, err := p.Chat(context.Background(), nil, "question", nil)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if llm.CallCount() != 0 {
		t.Errorf("model must not be called when retrieval fails, got %d calls", llm.CallCount())
	}
}

func TestPipelineCacheHitSkipsModel(t *testing.T) {
	g := genkit.Init(context.Background())
	llm := testutil.NewMockLLM("fresh answer")
	llm.Register(g)

	store := &mockRetriever{results: []knowledge.Result{splicedChunk()}}
	cache := newMockCache()
	p := NewPipeline(g, testutil.MockModelName, store, cache, 4, testutil.DiscardLogger())
	ctx := context.Background()

	first, err := p.Chat(ctx, nil, "question", nil)
	if err != nil {
		t.Fatalf("first Chat failed: %v", err)
	}
	if llm.CallCount() != 1 {
		t.Fatalf("expected 1 model call, got %d", llm.CallCount())
	}

	// identical question: answer comes from cache, model untouched
	var streamed strings.Builder
	second, err := p.Chat(ctx, nil, "question", func(ctx context.Context, text string) error {
		streamed.WriteString(text)
		return nil
	})
	if err != nil {
		t.Fatalf("second Chat failed: %v", err)
	}
	if llm.CallCount() != 1 {
		t.Errorf("cached answer must not call the model, got %d calls", llm.CallCount())
	}
	if second != first {
		t.Errorf("cached answer %q differs from original %q", second, first)
	}
	if streamed.String() != first {
		t.Errorf("cache hit must still stream the answer, got %q", streamed.String())
	}
}

func TestPipelineEmptyRephraseFallsBackToQuestion(t *testing.T) {
	g := genkit.Init(context.Background())
	llm := testutil.NewMockLLM("answer")
	llm.AddResponse("generate a search query", "   ")
	llm.Register(g)

	store := &mockRetriever{results: []knowledge.Result{splicedChunk()}}
	p := NewPipeline(g, testutil.MockModelName, store, nil, 4, testutil.DiscardLogger())

	history := []Message{{Role: RoleUser, Text: "hi"}, {Role: RoleModel, Text: "hello"}}
	if _, err := p.Chat(context.Background(), history, "What are his skills?", nil); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if store.lastQuery != "What are his skills?" {
		t.Errorf("expected fallback to raw question, got %q", store.lastQuery)
	}
}
