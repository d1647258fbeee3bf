package rag

import "strings"

// Splitter breaks a document into overlapping chunks for embedding. It splits
// recursively on progressively finer separators so chunks land on natural
// boundaries (headings, paragraphs, sentences) whenever possible.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// defaultSeparators orders boundaries from coarse to fine. Heading markers
// come first so markdown sections stay intact when they fit.
var defaultSeparators = []string{"\n# ", "\n## ", "\n\n", "\n", ". ", " ", ""}

// NewSplitter creates a Splitter. chunkSize is the maximum chunk length in
// bytes; chunkOverlap is how much of the previous chunk's tail is repeated at
// the start of the next one. Overlap must be smaller than size.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 5
	}
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// Split breaks text into chunks of at most chunkSize bytes. Whitespace-only
// chunks are dropped.
func (s *Splitter) Split(text string) []string {
	parts := s.split(text, s.separators)

	chunks := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		chunks = append(chunks, p)
	}
	return chunks
}

func (s *Splitter) split(text string, separators []string) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	sep := separators[len(separators)-1]
	rest := separators
	for i, candidate := range separators {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	var splits []string
	if sep == "" {
		splits = splitEvery(text, s.chunkSize)
	} else {
		pieces := strings.Split(text, sep)
		// re-attach the separator so no text is lost
		splits = make([]string, 0, len(pieces))
		for i, p := range pieces {
			if i > 0 {
				p = sep + p
			}
			splits = append(splits, p)
		}
	}

	var result []string
	var pending []string
	pendingLen := 0

	flush := func() {
		if len(pending) == 0 {
			return
		}
		result = append(result, strings.Join(pending, ""))
		pending = nil
		pendingLen = 0
	}

	for _, piece := range splits {
		if len(piece) > s.chunkSize {
			flush()
			result = append(result, s.split(piece, rest)...)
			continue
		}
		if pendingLen+len(piece) > s.chunkSize {
			flush()
			// carry overlap from the previous chunk into the next
			if s.chunkOverlap > 0 && len(result) > 0 {
				prev := result[len(result)-1]
				tail := overlapTail(prev, s.chunkOverlap)
				if tail != "" && len(tail)+len(piece) <= s.chunkSize {
					pending = append(pending, tail)
					pendingLen = len(tail)
				}
			}
		}
		pending = append(pending, piece)
		pendingLen += len(piece)
	}
	flush()

	return result
}

// overlapTail returns the last at-most-n bytes of s, snapped forward to a
// whitespace boundary so words are never cut in half.
func overlapTail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	tail := s[len(s)-n:]
	if idx := strings.IndexAny(tail, " \n"); idx >= 0 {
		tail = tail[idx+1:]
	}
	return tail
}

func splitEvery(text string, n int) []string {
	var out []string
	for len(text) > n {
		out = append(out, text[:n])
		text = text[n:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}
