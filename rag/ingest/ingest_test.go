package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/splitter"
)

type staticLoader struct {
	docs []rag.Document
	err  error
}

func (l *staticLoader) Load(context.Context) ([]rag.Document, error) {
	return l.docs, l.err
}

type recordingVectorStore struct {
	recreatedDim int
	added        []rag.Document
	addErr       error
}

func (s *recordingVectorStore) Recreate(_ context.Context, dim int) error {
	s.recreatedDim = dim
	return nil
}

func (s *recordingVectorStore) Add(_ context.Context, docs []rag.Document) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, docs...)
	return nil
}

func (s *recordingVectorStore) Search(context.Context, []float32, int) ([]rag.SearchResult, error) {
	return nil, nil
}

func (s *recordingVectorStore) Scroll(context.Context, int) ([]rag.Document, error) {
	return nil, nil
}

type fixedEmbedder struct{ dim int }

func (e *fixedEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return make([]float32, e.dim), nil
}

func (e *fixedEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = make([]float32, e.dim)
	}
	return out, nil
}

func (e *fixedEmbedder) Dimension() int { return e.dim }

// countingGraphStore records writes under a lock so parallel batches can
// share it in tests
type countingGraphStore struct {
	mu       sync.Mutex
	entities []rag.Entity
	rels     []rag.Relationship
}

func (s *countingGraphStore) Run(context.Context, string) (rag.QueryTable, error) {
	return rag.QueryTable{}, nil
}

func (s *countingGraphStore) AddEntity(_ context.Context, e rag.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = append(s.entities, e)
	return nil
}

func (s *countingGraphStore) AddRelationship(_ context.Context, r rag.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rels = append(s.rels, r)
	return nil
}

func (s *countingGraphStore) UpsertPersona(context.Context, rag.Persona) error { return nil }
func (s *countingGraphStore) GetPersona(context.Context, string) (rag.Persona, error) {
	return rag.Persona{}, nil
}
func (s *countingGraphStore) DedupeRelationships(context.Context) error { return nil }
func (s *countingGraphStore) CountDuplicateRelationships(context.Context) ([]rag.DuplicateEdge, error) {
	return nil, nil
}
func (s *countingGraphStore) Close() error { return nil }

// batchExtractor emits one entity per chunk and fails on marked batches
type batchExtractor struct {
	mu      sync.Mutex
	batches [][]rag.Document
	failOn  string
}

func (e *batchExtractor) Extract(_ context.Context, chunks []rag.Document) ([]rag.Entity, []rag.Relationship, error) {
	e.mu.Lock()
	e.batches = append(e.batches, chunks)
	e.mu.Unlock()

	var entities []rag.Entity
	for _, chunk := range chunks {
		if e.failOn != "" && strings.Contains(chunk.Content, e.failOn) {
			return nil, nil, errors.New("extraction blew up")
		}
		entities = append(entities, rag.Entity{Name: chunk.Content, Label: "Entity"})
	}
	return entities, nil, nil
}

func TestVectorIngestorFullReindex(t *testing.T) {
	loader := &staticLoader{docs: []rag.Document{
		{ID: "a", Content: strings.Repeat("alpha ", 300)},
		{ID: "b", Content: "short document"},
	}}
	store := &recordingVectorStore{}
	embedder := &fixedEmbedder{dim: 1536}

	ing := NewVectorIngestor(loader, splitter.NewRecursiveCharacterTextSplitter(), store, embedder, nil)
	stats, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1536, store.recreatedDim)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, len(store.added), stats.Chunks)
	assert.Greater(t, stats.Chunks, 2)
}

func TestVectorIngestorLoadFailure(t *testing.T) {
	loader := &staticLoader{err: rag.ErrEmptyCorpus}
	ing := NewVectorIngestor(loader, splitter.NewRecursiveCharacterTextSplitter(), &recordingVectorStore{}, &fixedEmbedder{dim: 4}, nil)

	_, err := ing.Run(context.Background())
	assert.ErrorIs(t, err, rag.ErrEmptyCorpus)
}

func TestGraphIngestorBatchesAndWrites(t *testing.T) {
	var docs []rag.Document
	for i := 0; i < 12; i++ {
		docs = append(docs, rag.Document{ID: fmt.Sprintf("d%d", i), Content: fmt.Sprintf("chunk %d", i)})
	}
	loader := &staticLoader{docs: docs}
	store := &countingGraphStore{}
	extractor := &batchExtractor{}

	ing := NewGraphIngestor(loader, passthroughSplitter{}, extractor, store, WithWorkers(3), WithBatchSize(5))
	stats, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.Chunks)
	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, 0, stats.FailedBatches)
	assert.Equal(t, 12, stats.Entities)
	assert.Len(t, store.entities, 12)

	// batches are 5/5/2
	sizes := map[int]int{}
	for _, batch := range extractor.batches {
		sizes[len(batch)]++
	}
	assert.Equal(t, map[int]int{5: 2, 2: 1}, sizes)
}

func TestGraphIngestorSkipsFailedBatches(t *testing.T) {
	loader := &staticLoader{docs: []rag.Document{
		{ID: "a", Content: "good one"},
		{ID: "b", Content: "poison"},
		{ID: "c", Content: "good two"},
	}}
	store := &countingGraphStore{}
	extractor := &batchExtractor{failOn: "poison"}

	ing := NewGraphIngestor(loader, passthroughSplitter{}, extractor, store, WithBatchSize(1))
	stats, err := ing.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, 1, stats.FailedBatches)
	assert.Equal(t, 2, stats.Entities)
	assert.Len(t, store.entities, 2)
}

// passthroughSplitter treats each document as a single chunk
type passthroughSplitter struct{}

func (passthroughSplitter) SplitText(text string) []string { return []string{text} }

func (passthroughSplitter) SplitDocuments(docs []rag.Document) []rag.Document { return docs }
