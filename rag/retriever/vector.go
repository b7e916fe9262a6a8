// Package retriever holds the two retrieval adapters behind the query
// pipeline: nearest-neighbor search over the vector index and LLM-generated
// Cypher over the knowledge graph.
package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// VectorRetriever answers a question with the top-k nearest chunks joined
// into one block of text. A transport failure is returned as an error, never
// folded into the content.
type VectorRetriever struct {
	embedder rag.Embedder
	store    rag.VectorStore
	topK     int
	logger   log.Logger
}

// VectorOption configures the VectorRetriever
type VectorOption func(*VectorRetriever)

// WithTopK overrides the number of chunks fetched per question
func WithTopK(k int) VectorOption {
	return func(r *VectorRetriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithVectorLogger sets the logger
func WithVectorLogger(logger log.Logger) VectorOption {
	return func(r *VectorRetriever) {
		r.logger = logger
	}
}

// NewVectorRetriever creates a retriever over an embedder and vector store
func NewVectorRetriever(embedder rag.Embedder, store rag.VectorStore, opts ...VectorOption) *VectorRetriever {
	r := &VectorRetriever{
		embedder: embedder,
		store:    store,
		topK:     3,
		logger:   log.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve embeds the question and returns the nearest chunk texts joined
// with blank lines. An empty index yields Found=false, not an error.
func (r *VectorRetriever) Retrieve(ctx context.Context, question string) (rag.Retrieval, error) {
	r.logger.Debug("vector search: %s", question)

	vector, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return rag.Retrieval{}, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := r.store.Search(ctx, vector, r.topK)
	if err != nil {
		return rag.Retrieval{}, fmt.Errorf("vector search failed: %w", err)
	}
	if len(results) == 0 {
		r.logger.Info("vector search found nothing")
		return rag.EmptyVectorRetrieval(), nil
	}

	texts := make([]string, 0, len(results))
	for _, res := range results {
		if res.Document.Content != "" {
			texts = append(texts, res.Document.Content)
		}
	}
	if len(texts) == 0 {
		return rag.EmptyVectorRetrieval(), nil
	}

	return rag.Retrieval{
		Content: strings.Join(texts, "\n\n"),
		Found:   true,
	}, nil
}

var _ rag.Retriever = (*VectorRetriever)(nil)
