package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// FalkorDBGraph implements rag.GraphStore over the Redis protocol using
// GRAPH.QUERY. Node identity lives in the generic `id` property; relationship
// types are ad hoc labels produced by extraction.
type FalkorDBGraph struct {
	client redis.UniversalClient
	graph  string
}

// NewFalkorDBGraph creates a graph store for `addr` (host:port) and a graph
// key inside FalkorDB
func NewFalkorDBGraph(addr, graph string) (*FalkorDBGraph, error) {
	if addr == "" {
		return nil, fmt.Errorf("graph address must not be empty")
	}
	if graph == "" {
		graph = "rag"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	return &FalkorDBGraph{client: client, graph: graph}, nil
}

// NewFalkorDBGraphFromURL accepts a falkordb://host:port/graph connection string
func NewFalkorDBGraphFromURL(connectionString string) (*FalkorDBGraph, error) {
	u, err := url.Parse(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}
	if u.Scheme != "falkordb" {
		return nil, fmt.Errorf("invalid connection string: scheme must be falkordb://")
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid connection string: missing host")
	}
	return NewFalkorDBGraph(u.Host, strings.TrimPrefix(u.Path, "/"))
}

// Run executes a Cypher statement and returns its tabular result
func (f *FalkorDBGraph) Run(ctx context.Context, cypher string) (rag.QueryTable, error) {
	reply, err := f.client.Do(ctx, "GRAPH.QUERY", f.graph, cypher).Result()
	if err != nil {
		return rag.QueryTable{}, fmt.Errorf("graph query failed: %w", err)
	}
	return parseGraphReply(reply)
}

// AddEntity merges an entity node by name. Merging keeps node identity
// unique even when the same entity is extracted from many chunks.
func (f *FalkorDBGraph) AddEntity(ctx context.Context, entity rag.Entity) error {
	label := sanitizeLabel(entity.Label)
	cypher := fmt.Sprintf("MERGE (n:%s {id: '%s'})", label, escapeString(entity.Name))
	_, err := f.Run(ctx, cypher)
	return err
}

// AddRelationship creates a directed typed edge between two entity names.
// Extraction enforces no edge uniqueness, so repeated extraction of the same
// fact accumulates parallel edges until DedupeRelationships runs.
func (f *FalkorDBGraph) AddRelationship(ctx context.Context, rel rag.Relationship) error {
	relType := sanitizeLabel(rel.Type)
	cypher := fmt.Sprintf(
		"MATCH (a {id: '%s'}), (b {id: '%s'}) CREATE (a)-[:%s]->(b)",
		escapeString(rel.Source), escapeString(rel.Target), relType,
	)
	_, err := f.Run(ctx, cypher)
	return err
}

// UpsertPersona writes a persona node and its preference edges
func (f *FalkorDBGraph) UpsertPersona(ctx context.Context, persona rag.Persona) error {
	var b strings.Builder
	fmt.Fprintf(&b, "MERGE (u:User {id: '%s'}) SET u.role = '%s', u.style = '%s'",
		escapeString(persona.ID), escapeString(persona.Role), escapeString(persona.Style))
	for i, pref := range persona.Preferences {
		fmt.Fprintf(&b, " MERGE (p%d:Preference {name: '%s'}) MERGE (u)-[:PREFERS]->(p%d)",
			i, escapeString(pref), i)
	}

	_, err := f.Run(ctx, b.String())
	return err
}

// GetPersona reads a persona back by user id
func (f *FalkorDBGraph) GetPersona(ctx context.Context, userID string) (rag.Persona, error) {
	cypher := fmt.Sprintf(
		"MATCH (u:User {id: '%s'}) OPTIONAL MATCH (u)-[:PREFERS]->(p:Preference) "+
			"RETURN u.role, u.style, collect(p.name)",
		escapeString(userID),
	)
	table, err := f.Run(ctx, cypher)
	if err != nil {
		return rag.Persona{}, err
	}
	if table.Empty() || len(table.Rows[0]) < 3 {
		return rag.Persona{}, fmt.Errorf("%w: %s", rag.ErrUnknownPersona, userID)
	}

	row := table.Rows[0]
	persona := rag.Persona{
		ID:    userID,
		Role:  fmt.Sprint(row[0]),
		Style: fmt.Sprint(row[1]),
	}
	if prefs, ok := row[2].([]any); ok {
		for _, p := range prefs {
			if name := fmt.Sprint(p); name != "" && name != "<nil>" {
				persona.Preferences = append(persona.Preferences, name)
			}
		}
	}
	return persona, nil
}

// DedupeRelationships collapses same-type parallel edges between identical
// node pairs to one, keeping the first of each group. Running it twice
// yields the same graph as running it once.
func (f *FalkorDBGraph) DedupeRelationships(ctx context.Context) error {
	const cypher = "MATCH (a)-[r]->(b) " +
		"WITH a, b, type(r) AS t, collect(r) AS rels " +
		"WHERE size(rels) > 1 " +
		"FOREACH (r IN tail(rels) | DELETE r)"
	_, err := f.Run(ctx, cypher)
	return err
}

// CountDuplicateRelationships lists node pairs still carrying duplicate
// same-type edges. Returns no rows after a dedupe pass.
func (f *FalkorDBGraph) CountDuplicateRelationships(ctx context.Context) ([]rag.DuplicateEdge, error) {
	const cypher = "MATCH (a)-[r]->(b) " +
		"WITH a, b, type(r) AS t, count(r) AS c " +
		"WHERE c > 1 " +
		"RETURN a.id, b.id, t, c"
	table, err := f.Run(ctx, cypher)
	if err != nil {
		return nil, err
	}

	dups := make([]rag.DuplicateEdge, 0, len(table.Rows))
	for _, row := range table.Rows {
		if len(row) < 4 {
			continue
		}
		dups = append(dups, rag.DuplicateEdge{
			Source: fmt.Sprint(row[0]),
			Target: fmt.Sprint(row[1]),
			Type:   fmt.Sprint(row[2]),
			Count:  toInt(row[3]),
		})
	}
	return dups, nil
}

// Close closes the underlying Redis connection
func (f *FalkorDBGraph) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

var _ rag.GraphStore = (*FalkorDBGraph)(nil)
