// Package ingest populates the two stores from a document corpus. Vector
// ingestion is a full reindex; graph ingestion extracts entities in parallel
// batches and writes each batch independently.
package ingest

import (
	"context"
	"fmt"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// VectorStats summarizes one vector ingestion run
type VectorStats struct {
	Documents int
	Chunks    int
}

// VectorIngestor rebuilds the vector collection from scratch on every run
type VectorIngestor struct {
	loader   rag.DocumentLoader
	splitter rag.TextSplitter
	store    rag.VectorStore
	embedder rag.Embedder
	logger   log.Logger
}

// NewVectorIngestor wires the ingestion pipeline stages together
func NewVectorIngestor(loader rag.DocumentLoader, splitter rag.TextSplitter, store rag.VectorStore, embedder rag.Embedder, logger log.Logger) *VectorIngestor {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &VectorIngestor{
		loader:   loader,
		splitter: splitter,
		store:    store,
		embedder: embedder,
		logger:   logger,
	}
}

// Run loads the corpus, drops and recreates the collection, splits every
// document and writes the chunks with their embeddings
func (v *VectorIngestor) Run(ctx context.Context) (VectorStats, error) {
	docs, err := v.loader.Load(ctx)
	if err != nil {
		return VectorStats{}, fmt.Errorf("failed to load corpus: %w", err)
	}
	v.logger.Info("loaded %d documents", len(docs))

	if err := v.store.Recreate(ctx, v.embedder.Dimension()); err != nil {
		return VectorStats{}, err
	}

	chunks := v.splitter.SplitDocuments(docs)
	v.logger.Info("split into %d chunks", len(chunks))

	if err := v.store.Add(ctx, chunks); err != nil {
		return VectorStats{}, fmt.Errorf("failed to index chunks: %w", err)
	}

	v.logger.Info("vector ingestion complete")
	return VectorStats{Documents: len(docs), Chunks: len(chunks)}, nil
}
