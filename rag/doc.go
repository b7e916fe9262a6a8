// Package rag defines the core types and interfaces of the agentic hybrid
// RAG engine: documents and chunks, graph entities and relationships, user
// personas, the closed routing destination enum, and the contracts between
// the router, the retrieval adapters, the stores, and the answer synthesizer.
//
// The flow at query time is strictly sequential:
//
//	question -> Classifier -> Retriever (graph falls back to vector once
//	on an empty result) -> synthesis prompt -> answer
//
// Ingestion is offline and populates the vector index and the knowledge
// graph independently; the two stores are never updated atomically.
package rag
