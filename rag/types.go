package rag

import (
	"fmt"
	"strings"
	"time"
)

// Document represents a piece of source text flowing through the pipeline.
// Chunks produced by the splitter are Documents carrying chunk metadata.
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	Embedding []float32      `json:"embedding,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// SearchResult is a document returned by similarity search together with its score
type SearchResult struct {
	Document Document
	Score    float64
}

// Entity is a graph node identified by its name. The label is optional and
// noisy after LLM extraction, so lookups never rely on it being exact.
type Entity struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

// Relationship is a directed typed edge between two entity names.
// Nothing enforces uniqueness at extraction time; duplicate edges of the same
// type between the same pair accumulate until the dedupe maintenance pass.
type Relationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Persona is a static per-user profile. It only biases the tone and depth of
// the final answer, never which facts are retrieved.
type Persona struct {
	ID          string   `json:"id"`
	Role        string   `json:"role"`
	Style       string   `json:"style"`
	Preferences []string `json:"preferences"`
}

// Profile renders the persona block embedded verbatim into the synthesis prompt
func (p Persona) Profile() string {
	var b strings.Builder
	fmt.Fprintf(&b, "USER PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.ID)
	fmt.Fprintf(&b, "- Role: %s\n", p.Role)
	fmt.Fprintf(&b, "- Preferred style: %s\n", p.Style)
	if len(p.Preferences) > 0 {
		fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(p.Preferences, ", "))
	}
	return b.String()
}

// Retrieval is the typed result of a retrieval adapter. Found distinguishes
// "nothing matched" from real content; transport failures are returned as
// errors, never folded into Content.
type Retrieval struct {
	Content string
	Found   bool
}

// NoVectorResults is the message used when the vector index returns no hits
const NoVectorResults = "No relevant vector results found."

// EmptyVectorRetrieval returns the canonical empty vector retrieval
func EmptyVectorRetrieval() Retrieval {
	return Retrieval{Content: NoVectorResults, Found: false}
}

// QueryTable is the tabular result of a graph query: column names plus rows
// of raw values, in the order the store returned them.
type QueryTable struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the table carries no rows
func (t QueryTable) Empty() bool {
	return len(t.Rows) == 0
}

// Format renders the table as readable lines, one row per line
func (t QueryTable) Format() string {
	if t.Empty() {
		return ""
	}

	var b strings.Builder
	for _, row := range t.Rows {
		parts := make([]string, 0, len(row))
		for i, v := range row {
			col := ""
			if i < len(t.Columns) {
				col = t.Columns[i]
			}
			if col != "" {
				parts = append(parts, fmt.Sprintf("%s: %v", col, v))
			} else {
				parts = append(parts, fmt.Sprintf("%v", v))
			}
		}
		b.WriteString(strings.Join(parts, " | "))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// DuplicateEdge is one row of the duplicate-relationship verification query
type DuplicateEdge struct {
	Source string
	Target string
	Type   string
	Count  int
}
