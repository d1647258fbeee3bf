package rag

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/olukareem/portfolio/internal/knowledge"
	"github.com/olukareem/portfolio/internal/resume"
)

// IndexStore is the persistence surface the indexer needs.
// *knowledge.Store satisfies it.
type IndexStore interface {
	Add(ctx context.Context, chunk knowledge.Chunk) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// CacheFlusher empties the response cache. Indexing changes the content every
// cached answer was grounded on, so stale responses must go.
type CacheFlusher interface {
	FlushAll(ctx context.Context) error
}

// Indexer rebuilds the knowledge store from the embedded page sources and the
// rendered resume.
type Indexer struct {
	store    IndexStore
	flusher  CacheFlusher
	splitter *Splitter
	siteURL  string
	logger   *slog.Logger
}

// NewIndexer creates an Indexer. flusher may be nil when no cache is
// configured. siteURL is the public base URL chunks are attributed to.
func NewIndexer(store IndexStore, flusher CacheFlusher, siteURL string, chunkSize, chunkOverlap int, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		store:    store,
		flusher:  flusher,
		splitter: NewSplitter(chunkSize, chunkOverlap),
		siteURL:  strings.TrimRight(siteURL, "/"),
		logger:   logger,
	}
}

// Run rebuilds the index from pages (the embedded content filesystem) plus
// the rendered resume. It returns the number of chunks stored.
//
// The response cache is flushed first; a flush failure is logged and indexing
// continues, since a stale cache is better than no index. A failure to clear
// the store aborts, because mixing old and new chunks corrupts retrieval.
func (ix *Indexer) Run(ctx context.Context, pages fs.FS) (int, error) {
	if ix.flusher != nil {
		if err := ix.flusher.FlushAll(ctx); err != nil {
			ix.logger.Warn("failed to flush response cache, continuing", "error", err)
		}
	}

	if err := ix.store.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear index: %w", err)
	}

	total := 0

	err := fs.WalkDir(pages, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}

		raw, err := fs.ReadFile(pages, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		url, ok := ix.pageURL(p)
		if !ok {
			// a chunk without a derivable URL would be cited wrong; skip it
			ix.logger.Warn("skipping page with underivable URL", "path", p)
			return nil
		}

		n, err := ix.addDocument(ctx, p, url, cleanText(string(raw)))
		if err != nil {
			return err
		}
		ix.logger.Info("indexed page", "path", p, "url", url, "chunks", n)
		total += n
		return nil
	})
	if err != nil {
		return total, err
	}

	// the resume data is the richest source; it lives at the site root
	n, err := ix.addDocument(ctx, "resume", ix.siteURL+"/", resume.RenderText())
	if err != nil {
		return total, err
	}
	ix.logger.Info("indexed resume", "chunks", n)
	total += n

	return total, nil
}

// addDocument splits text into chunks and stores them. IDs are seeded from
// source, not url: distinct sources can share a URL (the index page and the
// rendered resume both live at the site root) and must not overwrite each
// other's chunks.
func (ix *Indexer) addDocument(ctx context.Context, source, url, text string) (int, error) {
	chunks := ix.splitter.Split(text)
	for i, text := range chunks {
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", source, i))).String()
		err := ix.store.Add(ctx, knowledge.Chunk{ID: id, Text: text, URL: url})
		if err != nil {
			return i, fmt.Errorf("failed to index chunk %d of %s: %w", i, url, err)
		}
	}
	return len(chunks), nil
}

// pageURL maps a content file path to its public page URL.
// pages/about.md -> <site>/about, pages/index.md -> <site>/.
func (ix *Indexer) pageURL(p string) (string, bool) {
	rel := strings.TrimPrefix(p, "pages/")
	rel = strings.TrimSuffix(rel, ".md")
	if rel == "" || strings.Contains(rel, "..") {
		return "", false
	}
	if rel == "index" || path.Base(rel) == "index" {
		rel = path.Dir(rel)
		if rel == "." {
			rel = ""
		}
	}
	if rel == "" {
		return ix.siteURL + "/", true
	}
	return ix.siteURL + "/" + rel, true
}

var (
	importLineRe  = regexp.MustCompile(`(?m)^import\s.*$`)
	classAttrRe   = regexp.MustCompile(`\s*className="[^"]*"`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
	htmlCommentRe = regexp.MustCompile(`<!--[\s\S]*?-->`)
)

// cleanText strips source-level noise that adds tokens without meaning:
// import statements, styling attributes, comments, and runs of blank lines.
func cleanText(text string) string {
	text = importLineRe.ReplaceAllString(text, "")
	text = classAttrRe.ReplaceAllString(text, "")
	text = htmlCommentRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
