// Package config carries the explicit configuration passed to every pipeline
// component at construction. Values resolve with precedence explicit >
// environment > default, and are validated once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// Defaults for every tunable. Environment variables of the same name (with
// the BRAIN_ prefix where noted) override them; explicitly set struct fields
// override both.
const (
	DefaultChatModel        = "gpt-4o-mini"
	DefaultEmbeddingModel   = "text-embedding-ada-002"
	DefaultEmbeddingDim     = 1536
	DefaultQdrantURL        = "http://localhost:6333"
	DefaultCollection       = "tech_ecosystem"
	DefaultGraphAddr        = "localhost:6379"
	DefaultGraphName        = "tech_ecosystem"
	DefaultDataPath         = "./data"
	DefaultChatListenAddr   = ":8080"
	DefaultTopK             = 3
	DefaultChunkSize        = 1000
	DefaultChunkOverlap     = 200
	DefaultIngestWorkers    = 5
	DefaultIngestBatchSize  = 5
	DefaultSynthTemperature = 0.7
)

// Config is the full configuration of the engine and its commands
type Config struct {
	// OpenAIKey authenticates both chat and embedding calls
	OpenAIKey string
	// ChatModel is the completion model used by router, brain, extractor and judge
	ChatModel string
	// EmbeddingModel produces chunk and query vectors
	EmbeddingModel string
	// EmbeddingDim is the vector length of the embedding model
	EmbeddingDim int

	// QdrantURL is the vector store HTTP endpoint
	QdrantURL string
	// Collection is the vector collection name
	Collection string

	// GraphAddr is the FalkorDB host:port
	GraphAddr string
	// GraphName is the graph key inside FalkorDB
	GraphName string

	// DataPath is the directory scanned for *.txt source documents
	DataPath string
	// ChatListenAddr is the chat server bind address
	ChatListenAddr string

	// TopK is the number of chunks returned by vector retrieval
	TopK int
	// ChunkSize and ChunkOverlap drive the splitter
	ChunkSize    int
	ChunkOverlap int
	// IngestWorkers bounds concurrent extraction calls; IngestBatchSize is
	// the number of chunks per extraction call
	IngestWorkers   int
	IngestBatchSize int

	// SynthTemperature is the sampling temperature of the final answer call
	SynthTemperature float64
}

// Load reads an optional .env file, then resolves the full configuration from
// the environment with defaults filled in. A missing .env file is not an
// error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ChatModel:        envString("BRAIN_CHAT_MODEL", DefaultChatModel),
		EmbeddingModel:   envString("BRAIN_EMBEDDING_MODEL", DefaultEmbeddingModel),
		EmbeddingDim:     envInt("BRAIN_EMBEDDING_DIM", DefaultEmbeddingDim),
		QdrantURL:        envString("QDRANT_URL", DefaultQdrantURL),
		Collection:       envString("QDRANT_COLLECTION", DefaultCollection),
		GraphAddr:        envString("FALKORDB_ADDR", DefaultGraphAddr),
		GraphName:        envString("FALKORDB_GRAPH", DefaultGraphName),
		DataPath:         envString("BRAIN_DATA_PATH", DefaultDataPath),
		ChatListenAddr:   envString("BRAIN_CHAT_ADDR", DefaultChatListenAddr),
		TopK:             envInt("BRAIN_TOP_K", DefaultTopK),
		ChunkSize:        envInt("BRAIN_CHUNK_SIZE", DefaultChunkSize),
		ChunkOverlap:     envInt("BRAIN_CHUNK_OVERLAP", DefaultChunkOverlap),
		IngestWorkers:    envInt("BRAIN_INGEST_WORKERS", DefaultIngestWorkers),
		IngestBatchSize:  envInt("BRAIN_INGEST_BATCH", DefaultIngestBatchSize),
		SynthTemperature: envFloat("BRAIN_SYNTH_TEMPERATURE", DefaultSynthTemperature),
	}
}

// Validate checks the configuration for values every command depends on.
// Commands that talk to the LLM must call RequireOpenAI as well.
func (c Config) Validate() error {
	if c.QdrantURL == "" {
		return fmt.Errorf("qdrant url must not be empty")
	}
	if c.Collection == "" {
		return fmt.Errorf("vector collection name must not be empty")
	}
	if c.GraphAddr == "" {
		return fmt.Errorf("graph address must not be empty")
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top-k must be positive, got %d", c.TopK)
	}
	if c.IngestWorkers <= 0 || c.IngestBatchSize <= 0 {
		return fmt.Errorf("ingest workers and batch size must be positive")
	}
	return nil
}

// RequireOpenAI returns an error when the LLM credential is absent. Ingestion
// and benchmark commands call this before touching any store.
func (c Config) RequireOpenAI() error {
	if c.OpenAIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY is not set", rag.ErrMissingCredential)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
