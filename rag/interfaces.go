package rag

import "context"

// Embedder converts text into fixed-length vectors for similarity search
type Embedder interface {
	// EmbedQuery embeds a single piece of text
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	// EmbedDocuments embeds a batch of texts, one vector per text
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the vector length produced by this embedder
	Dimension() int
}

// VectorStore is an index of embedded chunks supporting nearest-neighbor search
type VectorStore interface {
	// Recreate drops the collection if it exists and creates it fresh with
	// the given vector dimension. Ingestion is a full reindex, never
	// incremental.
	Recreate(ctx context.Context, dimension int) error
	// Add writes documents and their embeddings into the collection
	Add(ctx context.Context, docs []Document) error
	// Search returns the k nearest chunks by cosine similarity
	Search(ctx context.Context, vector []float32, k int) ([]SearchResult, error)
	// Scroll pages through stored chunks without a query vector, up to limit
	Scroll(ctx context.Context, limit int) ([]Document, error)
}

// GraphStore is a database of typed nodes and directed typed edges queryable
// with Cypher
type GraphStore interface {
	// Run executes a Cypher statement and returns its tabular result
	Run(ctx context.Context, cypher string) (QueryTable, error)
	// AddEntity merges an entity node by name
	AddEntity(ctx context.Context, entity Entity) error
	// AddRelationship creates a directed typed edge between two entity names
	AddRelationship(ctx context.Context, rel Relationship) error
	// UpsertPersona writes a persona node and its preference edges
	UpsertPersona(ctx context.Context, persona Persona) error
	// GetPersona reads a persona back by user id
	GetPersona(ctx context.Context, userID string) (Persona, error)
	// DedupeRelationships collapses same-type parallel edges between
	// identical node pairs down to one. Idempotent.
	DedupeRelationships(ctx context.Context) error
	// CountDuplicateRelationships lists node pairs still carrying duplicate
	// same-type edges. Empty after a dedupe pass.
	CountDuplicateRelationships(ctx context.Context) ([]DuplicateEdge, error)
	// Close releases the underlying connection
	Close() error
}

// Classifier decides which retrieval destination a question should go to.
// Implementations may be model-backed or rule-based; the pipeline only sees
// the closed Destination enum.
type Classifier interface {
	Classify(ctx context.Context, question string) (Destination, error)
}

// Retriever fetches context for a question from one retrieval destination
type Retriever interface {
	Retrieve(ctx context.Context, question string) (Retrieval, error)
}

// DocumentLoader loads documents from some source
type DocumentLoader interface {
	Load(ctx context.Context) ([]Document, error)
}

// TextSplitter splits documents into retrieval-unit chunks
type TextSplitter interface {
	SplitText(text string) []string
	SplitDocuments(docs []Document) []Document
}

// EntityExtractor pulls entities and relationships out of a batch of chunks
type EntityExtractor interface {
	Extract(ctx context.Context, chunks []Document) ([]Entity, []Relationship, error)
}
