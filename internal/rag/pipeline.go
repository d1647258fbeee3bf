// Package rag implements the retrieval-augmented chat pipeline: rephrase the
// question against chat history, retrieve relevant chunks by vector
// similarity, then generate a streamed answer grounded in those chunks.
package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/olukareem/portfolio/internal/knowledge"
)

// Message roles mirror genkit's user/model convention.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Per-step model call budgets. The rephrase call produces one short query;
// generation streams a full answer.
const (
	rephraseTimeout = 15 * time.Second
	generateTimeout = 2 * time.Minute
)

// Message is one turn of chat history as submitted by the frontend.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// StreamFunc receives response text incrementally as the model produces it.
type StreamFunc func(ctx context.Context, text string) error

// Retriever is the vector search surface the pipeline needs.
// *knowledge.Store satisfies it.
type Retriever interface {
	Search(ctx context.Context, query string, opts ...knowledge.SearchOption) ([]knowledge.Result, error)
}

// ResponseCache caches model responses keyed by model and prompt.
// *llmcache.Cache satisfies it.
type ResponseCache interface {
	Lookup(ctx context.Context, llmKey, prompt string) (string, bool)
	Update(ctx context.Context, llmKey, prompt, response string)
}

// ErrStoreUnavailable means retrieval failed and the pipeline refused to
// answer without context. Callers should surface this as a service error, not
// fall back to an ungrounded response.
var ErrStoreUnavailable = errors.New("rag: knowledge store unavailable")

// Pipeline wires the rephrase, retrieve, and generate steps together.
type Pipeline struct {
	g         *genkit.Genkit
	modelName string
	store     Retriever
	cache     ResponseCache
	topK      int
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline. modelName must be fully qualified
// (e.g. "googleai/gemini-2.0-flash"). cache may be nil to disable caching.
func NewPipeline(g *genkit.Genkit, modelName string, store Retriever, cache ResponseCache, topK int, logger *slog.Logger) *Pipeline {
	if topK <= 0 {
		topK = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		g:         g,
		modelName: modelName,
		store:     store,
		cache:     cache,
		topK:      topK,
		logger:    logger,
	}
}

// Chat answers a question. history holds prior turns, oldest first. If stream
// is non-nil it receives response text as it is generated; the full response
// is returned either way.
//
// A cached response streams as a single piece without calling the model.
func (p *Pipeline) Chat(ctx context.Context, history []Message, question string, stream StreamFunc) (string, error) {
	query, err := p.rephrase(ctx, history, question)
	if err != nil {
		return "", fmt.Errorf("failed to rephrase question: %w", err)
	}

	docs, err := p.retrieve(ctx, query)
	if err != nil {
		p.logger.Error("retrieval failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return p.generate(ctx, history, question, docs, stream)
}

// rephrase collapses the conversation into a standalone search query. With no
// history the question is already standalone and the model call is skipped.
func (p *Pipeline) rephrase(ctx context.Context, history []Message, question string) (string, error) {
	if len(history) == 0 {
		return question, nil
	}

	messages := historyToMessages(history)
	messages = append(messages,
		ai.NewUserMessage(ai.NewTextPart(question)),
		ai.NewUserMessage(ai.NewTextPart(rephraseInstruction)),
	)

	cachePrompt := rephraseCachePrompt(history, question)
	if cached, ok := p.lookupCache(ctx, cachePrompt); ok {
		p.logger.Debug("rephrase cache hit")
		return cached, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, rephraseTimeout)
	defer cancel()
	response, err := genkit.Generate(callCtx, p.g,
		ai.WithModelName(p.modelName),
		ai.WithMessages(messages...),
	)
	if err != nil {
		return "", err
	}

	query := strings.TrimSpace(response.Text())
	if query == "" {
		// a silent model should not break retrieval
		query = question
	}

	p.updateCache(ctx, cachePrompt, query)
	return query, nil
}

func (p *Pipeline) retrieve(ctx context.Context, query string) ([]retrievedDoc, error) {
	results, err := p.store.Search(ctx, query, knowledge.WithTopK(p.topK))
	if err != nil {
		return nil, err
	}

	docs := make([]retrievedDoc, 0, len(results))
	for _, r := range results {
		docs = append(docs, retrievedDoc{URL: r.Chunk.URL, Text: r.Chunk.Text})
	}
	p.logger.Debug("retrieved context", "query", query, "chunks", len(docs))
	return docs, nil
}

func (p *Pipeline) generate(ctx context.Context, history []Message, question string, docs []retrievedDoc, stream StreamFunc) (string, error) {
	systemPrompt := buildSystemPrompt(docs)
	cachePrompt := generateCachePrompt(systemPrompt, history, question)

	if cached, ok := p.lookupCache(ctx, cachePrompt); ok {
		p.logger.Debug("response cache hit")
		if stream != nil {
			if err := stream(ctx, cached); err != nil {
				return "", err
			}
		}
		return cached, nil
	}

	messages := historyToMessages(history)
	messages = append(messages, ai.NewUserMessage(ai.NewTextPart(question)))

	opts := []ai.GenerateOption{
		ai.WithModelName(p.modelName),
		ai.WithSystem(systemPrompt),
		ai.WithMessages(messages...),
	}
	if stream != nil {
		opts = append(opts, ai.WithStreaming(func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
			return stream(ctx, chunk.Text())
		}))
	}

	callCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()
	response, err := genkit.Generate(callCtx, p.g, opts...)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	text := response.Text()
	p.updateCache(ctx, cachePrompt, text)
	return text, nil
}

func (p *Pipeline) lookupCache(ctx context.Context, prompt string) (string, bool) {
	if p.cache == nil {
		return "", false
	}
	return p.cache.Lookup(ctx, p.modelName, prompt)
}

func (p *Pipeline) updateCache(ctx context.Context, prompt, response string) {
	if p.cache == nil {
		return
	}
	p.cache.Update(ctx, p.modelName, prompt, response)
}

func historyToMessages(history []Message) []*ai.Message {
	messages := make([]*ai.Message, 0, len(history)+2)
	for _, m := range history {
		if m.Role == RoleModel {
			messages = append(messages, ai.NewModelMessage(ai.NewTextPart(m.Text)))
			continue
		}
		messages = append(messages, ai.NewUserMessage(ai.NewTextPart(m.Text)))
	}
	return messages
}

func rephraseCachePrompt(history []Message, question string) string {
	var b strings.Builder
	b.WriteString("rephrase\x1f")
	for _, m := range history {
		b.WriteString(m.Role)
		b.WriteString("\x1f")
		b.WriteString(m.Text)
		b.WriteString("\x1f")
	}
	b.WriteString(question)
	return b.String()
}

func generateCachePrompt(systemPrompt string, history []Message, question string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\x1f")
	for _, m := range history {
		b.WriteString(m.Role)
		b.WriteString("\x1f")
		b.WriteString(m.Text)
		b.WriteString("\x1f")
	}
	b.WriteString(question)
	return b.String()
}
