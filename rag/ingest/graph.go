package ingest

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// GraphStats summarizes one graph ingestion run
type GraphStats struct {
	Chunks        int
	Batches       int
	FailedBatches int
	Entities      int
	Relationships int
}

// GraphIngestor extracts entities and relationships from chunk batches with
// a bounded worker pool. Each worker owns its batch end to end: extract,
// then write to the graph store. Batches are disjoint, so workers share no
// state; one failing batch is logged and skipped, the rest proceed.
type GraphIngestor struct {
	loader    rag.DocumentLoader
	splitter  rag.TextSplitter
	extractor rag.EntityExtractor
	store     rag.GraphStore
	workers   int
	batchSize int
	logger    log.Logger
}

// GraphOption configures the GraphIngestor
type GraphOption func(*GraphIngestor)

// WithWorkers bounds the number of concurrent extraction calls
func WithWorkers(n int) GraphOption {
	return func(g *GraphIngestor) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithBatchSize sets how many chunks travel in one extraction call
func WithBatchSize(n int) GraphOption {
	return func(g *GraphIngestor) {
		if n > 0 {
			g.batchSize = n
		}
	}
}

// WithGraphLogger sets the logger
func WithGraphLogger(logger log.Logger) GraphOption {
	return func(g *GraphIngestor) {
		g.logger = logger
	}
}

// NewGraphIngestor wires the graph ingestion pipeline together
func NewGraphIngestor(loader rag.DocumentLoader, splitter rag.TextSplitter, extractor rag.EntityExtractor, store rag.GraphStore, opts ...GraphOption) *GraphIngestor {
	g := &GraphIngestor{
		loader:    loader,
		splitter:  splitter,
		extractor: extractor,
		store:     store,
		workers:   5,
		batchSize: 5,
		logger:    log.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run loads and splits the corpus, then processes chunk batches in parallel.
// Entities are written before relationships within each batch so endpoints
// exist when the edge is created.
func (g *GraphIngestor) Run(ctx context.Context) (GraphStats, error) {
	docs, err := g.loader.Load(ctx)
	if err != nil {
		return GraphStats{}, fmt.Errorf("failed to load corpus: %w", err)
	}

	chunks := g.splitter.SplitDocuments(docs)
	batches := g.batch(chunks)
	g.logger.Info("processing %d chunks in %d batches with %d workers",
		len(chunks), len(batches), g.workers)

	stats := GraphStats{Chunks: len(chunks), Batches: len(batches)}

	var mu sync.Mutex
	pool, poolCtx := errgroup.WithContext(ctx)
	pool.SetLimit(g.workers)

	for i, batch := range batches {
		pool.Go(func() error {
			entities, rels, err := g.processBatch(poolCtx, batch)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				g.logger.Warn("batch %d failed, skipping: %v", i, err)
				stats.FailedBatches++
				return nil
			}
			stats.Entities += entities
			stats.Relationships += rels
			g.logger.Debug("batch %d done: %d entities, %d relationships", i, entities, rels)
			return nil
		})
	}

	// workers never return errors, so this only observes ctx cancellation
	if err := pool.Wait(); err != nil {
		return stats, err
	}
	if ctx.Err() != nil {
		return stats, ctx.Err()
	}

	g.logger.Info("graph ingestion complete: %d entities, %d relationships, %d failed batches",
		stats.Entities, stats.Relationships, stats.FailedBatches)
	return stats, nil
}

func (g *GraphIngestor) processBatch(ctx context.Context, batch []rag.Document) (int, int, error) {
	entities, rels, err := g.extractor.Extract(ctx, batch)
	if err != nil {
		return 0, 0, err
	}

	for _, ent := range entities {
		if err := g.store.AddEntity(ctx, ent); err != nil {
			return 0, 0, fmt.Errorf("failed to write entity %q: %w", ent.Name, err)
		}
	}
	for _, rel := range rels {
		if err := g.store.AddRelationship(ctx, rel); err != nil {
			return 0, 0, fmt.Errorf("failed to write relationship %s-%s->%s: %w",
				rel.Source, rel.Type, rel.Target, err)
		}
	}
	return len(entities), len(rels), nil
}

func (g *GraphIngestor) batch(chunks []rag.Document) [][]rag.Document {
	var batches [][]rag.Document
	for start := 0; start < len(chunks); start += g.batchSize {
		end := start + g.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batches = append(batches, chunks[start:end])
	}
	return batches
}
