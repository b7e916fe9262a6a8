// Package splitter cuts documents into overlapping fixed-size chunks, the
// retrieval unit of the engine. Splitting is lossless: every character of the
// source text lands in at least one chunk.
package splitter

import (
	"fmt"
	"maps"
	"strings"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// RecursiveCharacterTextSplitter splits text into chunks of at most chunkSize
// characters with chunkOverlap characters shared between neighbors. Chunk
// boundaries prefer the coarsest separator available inside the window so
// related text stays together.
type RecursiveCharacterTextSplitter struct {
	separators   []string
	chunkSize    int
	chunkOverlap int
}

// Option configures the RecursiveCharacterTextSplitter
type Option func(*RecursiveCharacterTextSplitter)

// WithChunkSize sets the chunk size for the splitter
func WithChunkSize(size int) Option {
	return func(s *RecursiveCharacterTextSplitter) {
		s.chunkSize = size
	}
}

// WithChunkOverlap sets the chunk overlap for the splitter
func WithChunkOverlap(overlap int) Option {
	return func(s *RecursiveCharacterTextSplitter) {
		s.chunkOverlap = overlap
	}
}

// WithSeparators sets the separator hierarchy, coarsest first
func WithSeparators(separators []string) Option {
	return func(s *RecursiveCharacterTextSplitter) {
		s.separators = separators
	}
}

// NewRecursiveCharacterTextSplitter creates a splitter with chunk size 1000
// and overlap 200 unless configured otherwise
func NewRecursiveCharacterTextSplitter(opts ...Option) *RecursiveCharacterTextSplitter {
	s := &RecursiveCharacterTextSplitter{
		separators:   []string{"\n\n", "\n", " "},
		chunkSize:    1000,
		chunkOverlap: 200,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkOverlap >= s.chunkSize {
		s.chunkOverlap = s.chunkSize / 2
	}

	return s
}

// SplitText splits text into overlapping chunks. Consecutive chunks share
// chunkOverlap characters; no character of the input is dropped.
func (s *RecursiveCharacterTextSplitter) SplitText(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		end := start + s.chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		cut := s.breakPoint(text[start:end])
		chunks = append(chunks, text[start:start+cut])

		next := start + cut - s.chunkOverlap
		if next <= start {
			next = start + cut
		}
		start = next
	}

	return chunks
}

// breakPoint returns the cut position inside a full window, preferring the
// last occurrence of the coarsest separator in the second half of the window.
// Falls back to the full window when no separator is usable.
func (s *RecursiveCharacterTextSplitter) breakPoint(window string) int {
	half := len(window) / 2
	for _, sep := range s.separators {
		if sep == "" {
			continue
		}
		idx := strings.LastIndex(window, sep)
		if idx > half {
			return idx + len(sep)
		}
	}
	return len(window)
}

// SplitDocuments splits documents into chunk documents, carrying the parent
// metadata plus chunk bookkeeping
func (s *RecursiveCharacterTextSplitter) SplitDocuments(docs []rag.Document) []rag.Document {
	chunks := make([]rag.Document, 0)

	for _, doc := range docs {
		textChunks := s.SplitText(doc.Content)

		for i, chunk := range textChunks {
			metadata := make(map[string]any)
			maps.Copy(metadata, doc.Metadata)
			metadata["chunk_index"] = i
			metadata["chunk_total"] = len(textChunks)
			metadata["parent_id"] = doc.ID

			chunks = append(chunks, rag.Document{
				ID:        fmt.Sprintf("%s_chunk_%d", doc.ID, i),
				Content:   chunk,
				Metadata:  metadata,
				CreatedAt: doc.CreatedAt,
			})
		}
	}

	return chunks
}

var _ rag.TextSplitter = (*RecursiveCharacterTextSplitter)(nil)
