// Package embedding provides the OpenAI-backed embedder used for chunk and
// query vectors.
package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// OpenAIEmbedder embeds text with the OpenAI embeddings API. The default
// model is text-embedding-ada-002 with 1536 dimensions, matching the vector
// collection schema.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
}

// Option configures the OpenAIEmbedder
type Option func(*openai.ClientConfig)

// WithBaseURL points the embedder at an alternative API endpoint
func WithBaseURL(url string) Option {
	return func(cfg *openai.ClientConfig) {
		cfg.BaseURL = url
	}
}

// NewOpenAIEmbedder creates an embedder for the given API key and model
func NewOpenAIEmbedder(apiKey, model string, dimension int, opts ...Option) *OpenAIEmbedder {
	if model == "" {
		model = string(openai.AdaEmbeddingV2)
	}
	if dimension <= 0 {
		dimension = 1536
	}

	cfg := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(cfg),
		model:     openai.EmbeddingModel(model),
		dimension: dimension,
	}
}

// EmbedQuery embeds a single piece of text
func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedDocuments embeds a batch of texts in one API call
func (e *OpenAIEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response carries %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// Dimension returns the vector length produced by this embedder
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

var _ rag.Embedder = (*OpenAIEmbedder)(nil)
