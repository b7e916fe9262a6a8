// Package router classifies incoming questions into a retrieval destination.
// The primary implementation asks an LLM for a structured two-value decision;
// a rule-based classifier exists for offline runs and tests.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

const routingSystemPrompt = `You are an expert at routing user questions to a vectorstore or graph database.

Use the GRAPH_STORE for:
- Questions about relationships (e.g., "Who is the CEO of X?", "Does A own B?", "How is X connected to Y?")
- Questions involving specific entities (companies, people) and their connections.

Use the VECTOR_STORE for:
- Questions asking for summaries (e.g., "Summarize the history of Apple")
- Broad conceptual questions (e.g., "What is generative AI?", "Risks of cloud computing")

Respond with a JSON object of the form {"destination": "vector_store"} or {"destination": "graph_store"}.
Output only the JSON object, nothing else.`

// LLMClassifier routes with a single constrained LLM call. The decision
// channel is the structured "destination" field only; the model's judgment
// is final and there is no tie-break. An LLM transport failure propagates
// to the caller unrouted.
type LLMClassifier struct {
	model  llms.Model
	logger log.Logger
}

// NewLLMClassifier creates a classifier backed by the given model
func NewLLMClassifier(model llms.Model, logger log.Logger) *LLMClassifier {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &LLMClassifier{model: model, logger: logger}
}

// Classify returns the destination store for a question
func (c *LLMClassifier) Classify(ctx context.Context, question string) (rag.Destination, error) {
	c.logger.Debug("routing question: %s", question)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, routingSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, question),
	}

	response, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("routing call failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("routing call returned no choices")
	}

	var decision struct {
		Destination string `json:"destination"`
	}
	raw := response.Choices[0].Content
	if err := rag.UnmarshalLLMJSON(raw, &decision); err != nil {
		return "", fmt.Errorf("routing decision unreadable: %w", err)
	}

	dest, err := rag.ParseDestination(strings.ToLower(strings.TrimSpace(decision.Destination)))
	if err != nil {
		return "", fmt.Errorf("%w (model said %q)", err, decision.Destination)
	}

	c.logger.Info("routed to %s", dest)
	return dest, nil
}

var _ rag.Classifier = (*LLMClassifier)(nil)

// graph-leaning phrases; anything else falls through to the vector store
var graphCues = []string{
	"who is", "who are", "who founded", "who owns",
	"ceo of", "founder of", "owner of", "parent company",
	"own", "owns", "owned",
	"acquired", "acquire", "subsidiary",
	"partnered", "partner of", "competes", "competitor",
	"connected to", "relationship between", "related to",
}

// RuleClassifier is a deterministic keyword router. It exists so ingestion
// smoke tests and offline demos work without an API key; the live pipeline
// uses LLMClassifier.
type RuleClassifier struct{}

// NewRuleClassifier creates the keyword router
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify picks graph_store when a relationship cue appears in the
// question, vector_store otherwise
func (c *RuleClassifier) Classify(_ context.Context, question string) (rag.Destination, error) {
	q := strings.ToLower(question)
	for _, cue := range graphCues {
		if strings.Contains(q, cue) {
			return rag.DestinationGraphStore, nil
		}
	}
	return rag.DestinationVectorStore, nil
}

var _ rag.Classifier = (*RuleClassifier)(nil)
