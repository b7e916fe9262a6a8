// Command ingest-vector rebuilds the Qdrant collection from the data
// directory. Every run is a full reindex.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/kataras/golog"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/config"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/embedding"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/ingest"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/loader"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/splitter"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		golog.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.RequireOpenAI(); err != nil {
		golog.Fatalf("%v", err)
	}

	logger := log.NewGologLogger(golog.Default)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	embedder := embedding.NewOpenAIEmbedder(cfg.OpenAIKey, cfg.EmbeddingModel, cfg.EmbeddingDim)
	vectorStore := store.NewQdrantStore(cfg.QdrantURL, cfg.Collection, embedder)
	docs := loader.NewDirectoryLoader(cfg.DataPath, loader.WithSkipHandler(func(path string, err error) {
		golog.Warnf("skipping %s: %v", path, err)
	}))
	split := splitter.NewRecursiveCharacterTextSplitter(
		splitter.WithChunkSize(cfg.ChunkSize),
		splitter.WithChunkOverlap(cfg.ChunkOverlap),
	)

	ing := ingest.NewVectorIngestor(docs, split, vectorStore, embedder, logger)
	stats, err := ing.Run(ctx)
	if err != nil {
		golog.Fatalf("vector ingestion failed: %v", err)
	}
	golog.Infof("indexed %d chunks from %d documents into %q", stats.Chunks, stats.Documents, cfg.Collection)
}
