package rag

import "fmt"

// Destination is the closed set of retrieval targets a question can be routed to
type Destination string

const (
	// DestinationVectorStore routes to nearest-neighbor similarity search
	DestinationVectorStore Destination = "vector_store"
	// DestinationGraphStore routes to the knowledge graph
	DestinationGraphStore Destination = "graph_store"
)

// ParseDestination converts a raw decision string into a Destination.
// Anything outside the two enumerated values is an error; the decision channel
// never carries free text.
func ParseDestination(s string) (Destination, error) {
	switch Destination(s) {
	case DestinationVectorStore:
		return DestinationVectorStore, nil
	case DestinationGraphStore:
		return DestinationGraphStore, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadDestination, s)
	}
}

// String returns the wire value of the destination
func (d Destination) String() string {
	return string(d)
}
