// Command dedupe collapses duplicate same-type edges between identical node
// pairs, then verifies none remain.
package main

import (
	"context"

	"github.com/kataras/golog"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/config"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		golog.Fatalf("invalid configuration: %v", err)
	}

	graph, err := store.NewFalkorDBGraph(cfg.GraphAddr, cfg.GraphName)
	if err != nil {
		golog.Fatalf("failed to connect to graph: %v", err)
	}
	defer graph.Close()

	ctx := context.Background()

	before, err := graph.CountDuplicateRelationships(ctx)
	if err != nil {
		golog.Fatalf("failed to count duplicates: %v", err)
	}
	if len(before) == 0 {
		golog.Infof("no duplicate relationships found")
		return
	}
	golog.Infof("found %d node pairs with duplicate edges", len(before))
	for _, dup := range before {
		golog.Debugf("  %s -[%s]-> %s (x%d)", dup.Source, dup.Type, dup.Target, dup.Count)
	}

	if err := graph.DedupeRelationships(ctx); err != nil {
		golog.Fatalf("dedupe failed: %v", err)
	}

	after, err := graph.CountDuplicateRelationships(ctx)
	if err != nil {
		golog.Fatalf("verification failed: %v", err)
	}
	if len(after) != 0 {
		golog.Fatalf("%d duplicate pairs remain after dedupe", len(after))
	}
	golog.Infof("deduplication complete, verification clean")
}
