// Command setup-users seeds the demo personas into the graph and verifies
// they read back.
package main

import (
	"context"
	"strings"

	"github.com/kataras/golog"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/config"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
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

	for _, persona := range rag.DefaultPersonas() {
		if err := graph.UpsertPersona(ctx, persona); err != nil {
			golog.Fatalf("failed to create persona %s: %v", persona.ID, err)
		}
		golog.Infof("created persona %s", persona.ID)
	}

	for _, persona := range rag.DefaultPersonas() {
		stored, err := graph.GetPersona(ctx, persona.ID)
		if err != nil {
			golog.Fatalf("verification failed for %s: %v", persona.ID, err)
		}
		golog.Infof("verified %s (%s): %s", stored.ID, stored.Role, strings.Join(stored.Preferences, ", "))
	}
}
