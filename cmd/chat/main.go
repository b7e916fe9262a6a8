// Command chat serves the HTTP chat API over the full query pipeline.
package main

import (
	"flag"

	"github.com/kataras/golog"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/chat"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/config"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/embedding"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/engine"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/retriever"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/router"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/store"
)

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.ChatListenAddr, "listen address")
	reportPath := flag.String("report", "advanced_benchmark_summary.md", "benchmark markdown summary served at /report")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		golog.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.RequireOpenAI(); err != nil {
		golog.Fatalf("%v", err)
	}

	logger := log.NewGologLogger(golog.Default)

	model, err := openai.New(openai.WithToken(cfg.OpenAIKey), openai.WithModel(cfg.ChatModel))
	if err != nil {
		golog.Fatalf("failed to create model: %v", err)
	}

	graph, err := store.NewFalkorDBGraph(cfg.GraphAddr, cfg.GraphName)
	if err != nil {
		golog.Fatalf("failed to connect to graph: %v", err)
	}
	defer graph.Close()

	embedder := embedding.NewOpenAIEmbedder(cfg.OpenAIKey, cfg.EmbeddingModel, cfg.EmbeddingDim)
	vectorStore := store.NewQdrantStore(cfg.QdrantURL, cfg.Collection, embedder)

	brain := engine.NewBrain(
		router.NewLLMClassifier(model, logger),
		retriever.NewVectorRetriever(embedder, vectorStore,
			retriever.WithTopK(cfg.TopK),
			retriever.WithVectorLogger(logger)),
		retriever.NewGraphRetriever(model, graph, logger),
		graph,
		model,
		engine.WithSynthesisTemperature(cfg.SynthTemperature),
		engine.WithLogger(logger),
	)

	server := chat.NewServer(brain,
		chat.WithReportPath(*reportPath),
		chat.WithServerLogger(logger),
	)
	if err := server.Start(*addr); err != nil {
		golog.Fatalf("server stopped: %v", err)
	}
}
