package retriever

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// cypherGenerationPrompt translates a question into Cypher. Entity names and
// relationship vocabularies are noisy after LLM extraction, so the rules
// trade precision for recall: substring matching on node ids and no
// relationship types in the pattern.
const cypherGenerationPrompt = `You are an expert Cypher translator.
**CRITICAL RULES:**
1. **NEVER** use exact matching like {id: 'Tesla'}.
2. **ALWAYS** use the CONTAINS clause with case-insensitive search, e.g. WHERE toLower(c.id) CONTAINS 'tesla'.
3. **RELATIONSHIPS:** **NEVER** use a colon or type check inside the relationship pattern.
   - Wrong: -[r:CEO_OF]-
   - Correct: -[r]- (match ANY relationship)
4. **RETURN:** Always return the nodes AND the relationship type.
   - Example: RETURN p.id, type(r) AS relationship, c.id
5. **TARGET FILTERING:** If the question implies a specific entity type (e.g. "Who" -> Person, "Company" -> Company), add that label to the target node to filter out noise.
   - Question: "Who is the CEO of Tesla?"
   - Correct: MATCH (c:Company)-[r]-(p:Person) WHERE ...
6. End the query with LIMIT 100.

Schema:
Node properties: [id]
Common Relationships: OWNS, CEO_OF, PARTNERED_WITH, COMPETES_WITH, ACQUIRED, SUBSIDIARY_OF

Output only the Cypher query, nothing else.

Question: %s
Cypher Query:`

// GraphRetriever translates a question to Cypher with an LLM, repairs the
// statement against the generation rules, runs it, and renders the table.
type GraphRetriever struct {
	model  llms.Model
	store  rag.GraphStore
	logger log.Logger
}

// NewGraphRetriever creates a retriever over an LLM and graph store
func NewGraphRetriever(model llms.Model, store rag.GraphStore, logger log.Logger) *GraphRetriever {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &GraphRetriever{model: model, store: store, logger: logger}
}

// Retrieve answers a question from the graph. An empty result table yields
// Found=false so the caller can fall back; generation or transport failures
// are returned as errors.
func (r *GraphRetriever) Retrieve(ctx context.Context, question string) (rag.Retrieval, error) {
	cypher, err := r.GenerateCypher(ctx, question)
	if err != nil {
		return rag.Retrieval{}, err
	}
	r.logger.Debug("generated cypher: %s", cypher)

	table, err := r.store.Run(ctx, cypher)
	if err != nil {
		return rag.Retrieval{}, fmt.Errorf("graph retrieval failed: %w", err)
	}
	if table.Empty() {
		r.logger.Info("graph query returned no rows")
		return rag.Retrieval{Found: false}, nil
	}

	return rag.Retrieval{Content: table.Format(), Found: true}, nil
}

// GenerateCypher produces the repaired Cypher statement for a question
// without executing it
func (r *GraphRetriever) GenerateCypher(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(cypherGenerationPrompt, question)
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	response, err := r.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("cypher generation failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("cypher generation returned no choices")
	}

	cypher, err := RepairCypher(response.Choices[0].Content)
	if err != nil {
		return "", fmt.Errorf("generated cypher unusable: %w", err)
	}
	return cypher, nil
}

var _ rag.Retriever = (*GraphRetriever)(nil)
