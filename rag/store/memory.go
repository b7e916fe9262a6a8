package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// InMemoryVectorStore is a simple in-memory vector store. It backs tests and
// offline runs where no Qdrant endpoint is available.
type InMemoryVectorStore struct {
	mu         sync.RWMutex
	documents  []rag.Document
	embeddings [][]float32
	embedder   rag.Embedder
}

// NewInMemoryVectorStore creates a new InMemoryVectorStore
func NewInMemoryVectorStore(embedder rag.Embedder) *InMemoryVectorStore {
	return &InMemoryVectorStore{
		documents:  make([]rag.Document, 0),
		embeddings: make([][]float32, 0),
		embedder:   embedder,
	}
}

// Recreate clears all stored documents
func (s *InMemoryVectorStore) Recreate(ctx context.Context, dimension int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = s.documents[:0]
	s.embeddings = s.embeddings[:0]
	return nil
}

// Add adds documents, embedding any that carry no vector
func (s *InMemoryVectorStore) Add(ctx context.Context, docs []rag.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		embedding := doc.Embedding
		if len(embedding) == 0 {
			if s.embedder == nil {
				return fmt.Errorf("no embedder configured and document has no embedding")
			}
			var err error
			embedding, err = s.embedder.EmbedQuery(ctx, doc.Content)
			if err != nil {
				return fmt.Errorf("failed to embed document: %w", err)
			}
		}
		s.documents = append(s.documents, doc)
		s.embeddings = append(s.embeddings, embedding)
	}
	return nil
}

// Search returns the k nearest documents by cosine similarity
func (s *InMemoryVectorStore) Search(ctx context.Context, vector []float32, k int) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.documents) == 0 {
		return []rag.SearchResult{}, nil
	}

	results := make([]rag.SearchResult, len(s.documents))
	for i, emb := range s.embeddings {
		results[i] = rag.SearchResult{
			Document: s.documents[i],
			Score:    cosineSimilarity(vector, emb),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Scroll returns up to limit stored documents in insertion order
func (s *InMemoryVectorStore) Scroll(ctx context.Context, limit int) ([]rag.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.documents)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]rag.Document, n)
	copy(out, s.documents[:n])
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var _ rag.VectorStore = (*InMemoryVectorStore)(nil)
