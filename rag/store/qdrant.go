// Package store holds the two persistence backends of the engine: the Qdrant
// vector index and the FalkorDB knowledge graph, plus an in-memory vector
// store used by tests and offline runs.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// QdrantStore implements rag.VectorStore against the Qdrant HTTP API. Chunk
// text travels in the payload under "page_content"; search requests the
// payload back and reads that field.
type QdrantStore struct {
	baseURL    string
	collection string
	embedder   rag.Embedder
	httpClient *http.Client
}

// QdrantOption configures the QdrantStore
type QdrantOption func(*QdrantStore)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) QdrantOption {
	return func(s *QdrantStore) {
		s.httpClient = c
	}
}

// NewQdrantStore creates a vector store bound to one collection
func NewQdrantStore(baseURL, collection string, embedder rag.Embedder, opts ...QdrantOption) *QdrantStore {
	s := &QdrantStore{
		baseURL:    baseURL,
		collection: collection,
		embedder:   embedder,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Recreate drops the collection if it exists and creates it fresh with the
// given vector dimension and cosine distance. Every ingestion run is a full
// reindex.
func (s *QdrantStore) Recreate(ctx context.Context, dimension int) error {
	// Deleting a collection that does not exist is fine.
	_, _ = s.do(ctx, http.MethodDelete, s.collectionURL(), nil)

	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	if _, err := s.do(ctx, http.MethodPut, s.collectionURL(), body); err != nil {
		return fmt.Errorf("failed to create collection %q: %w", s.collection, err)
	}
	return nil
}

type qdrantPoint struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// Add writes documents and their embeddings into the collection. Documents
// without an embedding are embedded in one batch call.
func (s *QdrantStore) Add(ctx context.Context, docs []rag.Document) error {
	if len(docs) == 0 {
		return nil
	}

	var missing []int
	var texts []string
	for i, doc := range docs {
		if len(doc.Embedding) == 0 {
			missing = append(missing, i)
			texts = append(texts, doc.Content)
		}
	}
	if len(missing) > 0 {
		if s.embedder == nil {
			return fmt.Errorf("no embedder configured and %d documents carry no embedding", len(missing))
		}
		vectors, err := s.embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed documents: %w", err)
		}
		for j, i := range missing {
			docs[i].Embedding = vectors[j]
		}
	}

	points := make([]qdrantPoint, len(docs))
	for i, doc := range docs {
		payload := map[string]any{"page_content": doc.Content}
		for k, v := range doc.Metadata {
			payload[k] = v
		}
		points[i] = qdrantPoint{
			ID:      uuid.NewString(),
			Vector:  doc.Embedding,
			Payload: payload,
		}
	}

	url := s.collectionURL() + "/points?wait=true"
	if _, err := s.do(ctx, http.MethodPut, url, map[string]any{"points": points}); err != nil {
		return fmt.Errorf("failed to upsert %d points: %w", len(points), err)
	}
	return nil
}

// Search returns the k nearest chunks by cosine similarity
func (s *QdrantStore) Search(ctx context.Context, vector []float32, k int) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	body := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	raw, err := s.do(ctx, http.MethodPost, s.collectionURL()+"/points/search", body)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]rag.SearchResult, 0, len(resp.Result))
	for _, item := range resp.Result {
		doc := documentFromPayload(item.Payload)
		if doc.Content == "" {
			continue
		}
		results = append(results, rag.SearchResult{Document: doc, Score: item.Score})
	}
	return results, nil
}

// Scroll pages through stored chunks without a query vector, up to limit
func (s *QdrantStore) Scroll(ctx context.Context, limit int) ([]rag.Document, error) {
	body := map[string]any{
		"limit":        limit,
		"with_payload": true,
	}
	raw, err := s.do(ctx, http.MethodPost, s.collectionURL()+"/points/scroll", body)
	if err != nil {
		return nil, fmt.Errorf("scroll failed: %w", err)
	}

	var resp struct {
		Result struct {
			Points []struct {
				Payload map[string]any `json:"payload"`
			} `json:"points"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode scroll response: %w", err)
	}

	docs := make([]rag.Document, 0, len(resp.Result.Points))
	for _, p := range resp.Result.Points {
		doc := documentFromPayload(p.Payload)
		if doc.Content == "" {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func documentFromPayload(payload map[string]any) rag.Document {
	doc := rag.Document{Metadata: make(map[string]any)}
	for k, v := range payload {
		if k == "page_content" {
			if text, ok := v.(string); ok {
				doc.Content = text
			}
			continue
		}
		doc.Metadata[k] = v
	}
	return doc
}

func (s *QdrantStore) collectionURL() string {
	return fmt.Sprintf("%s/collections/%s", s.baseURL, s.collection)
}

func (s *QdrantStore) do(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("qdrant returned %s: %s", resp.Status, bytes.TrimSpace(raw))
	}
	return raw, nil
}

var _ rag.VectorStore = (*QdrantStore)(nil)
