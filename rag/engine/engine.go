// Package engine is the query-time pipeline: persona lookup, routing,
// retrieval with a one-shot graph-to-vector fallback, and persona-adapted
// answer synthesis.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

const synthesisPromptTemplate = `You are a helpful AI Assistant.

%s

DATA RETRIEVED:
%s

USER QUESTION: %s

Answer the question strictly based on the retrieved data, but ADAPT your tone and depth
to match the User Profile above.`

// dontKnowMarker is the phrase graph answers carry when the query matched
// nothing useful; it triggers the vector fallback like an empty result does
const dontKnowMarker = "I don't know"

// Answer is the result of one Ask call, with enough provenance to display
// which path produced it
type Answer struct {
	Text         string
	Destination  rag.Destination
	UsedFallback bool
	Persona      rag.Persona
}

// Brain answers questions for a known user. Each Ask is one independent,
// strictly sequential call chain; concurrent callers share nothing mutable.
type Brain struct {
	classifier rag.Classifier
	vector     rag.Retriever
	graph      rag.Retriever
	personas   rag.GraphStore
	model      llms.Model
	temp       float64
	logger     log.Logger
}

// BrainOption configures the Brain
type BrainOption func(*Brain)

// WithSynthesisTemperature overrides the answer-generation temperature
func WithSynthesisTemperature(t float64) BrainOption {
	return func(b *Brain) {
		b.temp = t
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) BrainOption {
	return func(b *Brain) {
		b.logger = logger
	}
}

// NewBrain wires the query pipeline together
func NewBrain(classifier rag.Classifier, vector, graph rag.Retriever, personas rag.GraphStore, model llms.Model, opts ...BrainOption) *Brain {
	b := &Brain{
		classifier: classifier,
		vector:     vector,
		graph:      graph,
		personas:   personas,
		model:      model,
		temp:       0.7,
		logger:     log.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Ask answers a question for a user. Routing and synthesis failures
// propagate; a failed or empty graph retrieval falls back to the vector
// store exactly once, and a failed fallback propagates without a retry.
func (b *Brain) Ask(ctx context.Context, question, userID string) (Answer, error) {
	persona, err := b.personas.GetPersona(ctx, userID)
	if err != nil {
		return Answer{}, err
	}
	b.logger.Info("processing question for %s (%s)", persona.ID, persona.Role)

	dest, err := b.classifier.Classify(ctx, question)
	if err != nil {
		return Answer{}, err
	}

	answer := Answer{Destination: dest, Persona: persona}

	var retrieval rag.Retrieval
	switch dest {
	case rag.DestinationGraphStore:
		retrieval, err = b.graph.Retrieve(ctx, question)
		if err != nil || !retrieval.Found || strings.Contains(retrieval.Content, dontKnowMarker) {
			if err != nil {
				b.logger.Warn("graph retrieval failed, falling back to vector: %v", err)
			} else {
				b.logger.Info("graph came back empty, falling back to vector")
			}
			answer.UsedFallback = true
			retrieval, err = b.vector.Retrieve(ctx, question)
			if err != nil {
				return Answer{}, fmt.Errorf("fallback retrieval failed: %w", err)
			}
		}
	default:
		retrieval, err = b.vector.Retrieve(ctx, question)
		if err != nil {
			return Answer{}, fmt.Errorf("vector retrieval failed: %w", err)
		}
	}

	text, err := b.synthesize(ctx, persona, retrieval.Content, question)
	if err != nil {
		return Answer{}, err
	}
	answer.Text = text
	return answer, nil
}

// synthesize builds the final prompt out of the persona profile, the
// retrieved content and the question, all verbatim, and makes one model call
func (b *Brain) synthesize(ctx context.Context, persona rag.Persona, data, question string) (string, error) {
	prompt := fmt.Sprintf(synthesisPromptTemplate, persona.Profile(), data, question)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	response, err := b.model.GenerateContent(ctx, messages, llms.WithTemperature(b.temp))
	if err != nil {
		return "", fmt.Errorf("answer synthesis failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("answer synthesis returned no choices")
	}
	return response.Choices[0].Content, nil
}
