// Command benchmark runs every retrieval strategy against the stress-test
// question set, grades the answers, and writes the scorecard, a CSV of
// graded answers, a markdown summary and a history database entry.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/kataras/golog"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/bench"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/config"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/embedding"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/engine"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/retriever"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/router"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/store"
)

const corpusFetchLimit = 1000

func main() {
	cfg := config.Load()

	csvPath := flag.String("csv", "advanced_benchmark_details.csv", "per-answer detail output")
	mdPath := flag.String("md", "advanced_benchmark_summary.md", "markdown summary output")
	dbPath := flag.String("db", "benchmark_history.db", "history database, empty to skip")
	flag.Parse()

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

	embedder := embedding.NewOpenAIEmbedder(cfg.OpenAIKey, cfg.EmbeddingModel, cfg.EmbeddingDim)
	vectorStore := store.NewQdrantStore(cfg.QdrantURL, cfg.Collection, embedder)

	vectorRetriever := retriever.NewVectorRetriever(embedder, vectorStore, retriever.WithTopK(cfg.TopK))
	graphRetriever := retriever.NewGraphRetriever(model, graph, logger)

	golog.Infof("building BM25 index from collection %q", cfg.Collection)
	corpus, err := bench.LoadCorpus(ctx, vectorStore, corpusFetchLimit)
	if err != nil {
		golog.Fatalf("failed to build BM25 corpus: %v", err)
	}
	golog.Infof("BM25 index ready with %d documents", len(corpus))

	brain := engine.NewBrain(
		router.NewLLMClassifier(model, logger),
		vectorRetriever,
		graphRetriever,
		graph,
		model,
		engine.WithSynthesisTemperature(cfg.SynthTemperature),
		engine.WithLogger(logger),
	)

	strategies := []bench.Strategy{
		bench.NewBM25Strategy(corpus, model),
		bench.NewNaiveVectorStrategy(vectorRetriever, model),
		bench.NewHyDEStrategy(vectorRetriever, model),
		bench.NewGraphOnlyStrategy(graphRetriever, model),
		bench.NewAgenticStrategy(brain, "Ram"),
	}

	runner := bench.NewRunner(strategies, bench.NewJudge(model, logger), logger)
	report, err := runner.Run(ctx, bench.DefaultTestSet())
	if err != nil {
		golog.Fatalf("benchmark aborted: %v", err)
	}

	fmt.Println(bench.RenderScorecard(report, runner.StrategyNames()))

	if err := writeFile(*csvPath, func(f *os.File) error {
		return bench.WriteCSV(f, report)
	}); err != nil {
		golog.Fatalf("failed to write CSV: %v", err)
	}
	if err := writeFile(*mdPath, func(f *os.File) error {
		return bench.WriteMarkdown(f, report, runner.StrategyNames())
	}); err != nil {
		golog.Fatalf("failed to write markdown: %v", err)
	}
	golog.Infof("reports saved to %s and %s", *csvPath, *mdPath)

	if *dbPath != "" {
		history, err := bench.NewHistoryStore(*dbPath)
		if err != nil {
			golog.Fatalf("failed to open history db: %v", err)
		}
		defer history.Close()

		runID, err := history.SaveRun(ctx, report)
		if err != nil {
			golog.Fatalf("failed to save run: %v", err)
		}
		golog.Infof("run recorded as %s", runID)
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
