// Command ingest-graph extracts entities and relationships from the data
// directory into FalkorDB using a bounded worker pool.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/kataras/golog"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/config"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/extract"
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

	model, err := openai.New(openai.WithToken(cfg.OpenAIKey), openai.WithModel(cfg.ChatModel))
	if err != nil {
		golog.Fatalf("failed to create model: %v", err)
	}

	graph, err := store.NewFalkorDBGraph(cfg.GraphAddr, cfg.GraphName)
	if err != nil {
		golog.Fatalf("failed to connect to graph: %v", err)
	}
	defer graph.Close()

	docs := loader.NewDirectoryLoader(cfg.DataPath, loader.WithSkipHandler(func(path string, err error) {
		golog.Warnf("skipping %s: %v", path, err)
	}))
	split := splitter.NewRecursiveCharacterTextSplitter(
		splitter.WithChunkSize(cfg.ChunkSize),
		splitter.WithChunkOverlap(cfg.ChunkOverlap),
	)
	extractor := extract.NewLLMExtractor(model, logger)

	ing := ingest.NewGraphIngestor(docs, split, extractor, graph,
		ingest.WithWorkers(cfg.IngestWorkers),
		ingest.WithBatchSize(cfg.IngestBatchSize),
		ingest.WithGraphLogger(logger),
	)

	stats, err := ing.Run(ctx)
	if err != nil {
		golog.Fatalf("graph ingestion failed: %v", err)
	}
	golog.Infof("wrote %d entities and %d relationships from %d chunks (%d of %d batches failed)",
		stats.Entities, stats.Relationships, stats.Chunks, stats.FailedBatches, stats.Batches)
	golog.Infof("run the dedupe command to collapse duplicate edges")
}
