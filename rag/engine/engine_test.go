package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

type fixedClassifier struct {
	dest rag.Destination
	err  error
}

func (c *fixedClassifier) Classify(context.Context, string) (rag.Destination, error) {
	return c.dest, c.err
}

type countingRetriever struct {
	retrieval rag.Retrieval
	err       error
	calls     int
}

func (r *countingRetriever) Retrieve(context.Context, string) (rag.Retrieval, error) {
	r.calls++
	return r.retrieval, r.err
}

type personaStore struct {
	persona rag.Persona
	err     error
}

func (s *personaStore) Run(context.Context, string) (rag.QueryTable, error) {
	return rag.QueryTable{}, nil
}
func (s *personaStore) AddEntity(context.Context, rag.Entity) error             { return nil }
func (s *personaStore) AddRelationship(context.Context, rag.Relationship) error { return nil }
func (s *personaStore) UpsertPersona(context.Context, rag.Persona) error        { return nil }

func (s *personaStore) GetPersona(context.Context, string) (rag.Persona, error) {
	return s.persona, s.err
}

func (s *personaStore) DedupeRelationships(context.Context) error { return nil }
func (s *personaStore) CountDuplicateRelationships(context.Context) ([]rag.DuplicateEdge, error) {
	return nil, nil
}
func (s *personaStore) Close() error { return nil }

type synthLLM struct {
	response string
	err      error
	prompts  []string
}

func (m *synthLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompts = append(m.prompts, text.Text)
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.response}},
	}, nil
}

func (m *synthLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return m.response, m.err
}

var rahul = rag.Persona{
	ID:          "Rahul",
	Role:        "CTO",
	Style:       "Technical, detailed, includes code snippets",
	Preferences: []string{"System Architecture", "Python Code"},
}

func TestAskVectorPath(t *testing.T) {
	vector := &countingRetriever{retrieval: rag.Retrieval{Content: "Tesla history...", Found: true}}
	graph := &countingRetriever{}
	llm := &synthLLM{response: "Here is a summary."}

	brain := NewBrain(
		&fixedClassifier{dest: rag.DestinationVectorStore},
		vector, graph,
		&personaStore{persona: rahul},
		llm,
	)

	answer, err := brain.Ask(context.Background(), "Summarize Tesla's history", "Rahul")
	require.NoError(t, err)

	assert.Equal(t, "Here is a summary.", answer.Text)
	assert.Equal(t, rag.DestinationVectorStore, answer.Destination)
	assert.False(t, answer.UsedFallback)
	assert.Equal(t, 1, vector.calls)
	assert.Equal(t, 0, graph.calls)
}

func TestAskGraphPathNoFallbackWhenFound(t *testing.T) {
	vector := &countingRetriever{}
	graph := &countingRetriever{retrieval: rag.Retrieval{Content: "Elon Musk | CEO_OF | Tesla", Found: true}}

	brain := NewBrain(
		&fixedClassifier{dest: rag.DestinationGraphStore},
		vector, graph,
		&personaStore{persona: rahul},
		&synthLLM{response: "Elon Musk."},
	)

	answer, err := brain.Ask(context.Background(), "Who is the CEO of Tesla?", "Rahul")
	require.NoError(t, err)
	assert.False(t, answer.UsedFallback)
	assert.Equal(t, 0, vector.calls)
	assert.Equal(t, 1, graph.calls)
}

func TestAskFallsBackOnceOnEmptyGraph(t *testing.T) {
	vector := &countingRetriever{retrieval: rag.Retrieval{Content: "vector content", Found: true}}
	graph := &countingRetriever{retrieval: rag.Retrieval{Found: false}}
	llm := &synthLLM{response: "answer"}

	brain := NewBrain(
		&fixedClassifier{dest: rag.DestinationGraphStore},
		vector, graph,
		&personaStore{persona: rahul},
		llm,
	)

	answer, err := brain.Ask(context.Background(), "Who is nobody?", "Rahul")
	require.NoError(t, err)

	assert.True(t, answer.UsedFallback)
	assert.Equal(t, 1, graph.calls)
	assert.Equal(t, 1, vector.calls)
	// the synthesized prompt carries the fallback content, not the empty result
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "vector content")
}

func TestAskFallsBackOnDontKnowMarker(t *testing.T) {
	vector := &countingRetriever{retrieval: rag.Retrieval{Content: "vector content", Found: true}}
	graph := &countingRetriever{retrieval: rag.Retrieval{Content: "I don't know.", Found: true}}

	brain := NewBrain(
		&fixedClassifier{dest: rag.DestinationGraphStore},
		vector, graph,
		&personaStore{persona: rahul},
		&synthLLM{response: "answer"},
	)

	answer, err := brain.Ask(context.Background(), "Who is nobody?", "Rahul")
	require.NoError(t, err)
	assert.True(t, answer.UsedFallback)
	assert.Equal(t, 1, vector.calls)
}

func TestAskFallbackFailureDoesNotRetry(t *testing.T) {
	vectorErr := errors.New("vector down")
	vector := &countingRetriever{err: vectorErr}
	graph := &countingRetriever{err: errors.New("graph down")}

	brain := NewBrain(
		&fixedClassifier{dest: rag.DestinationGraphStore},
		vector, graph,
		&personaStore{persona: rahul},
		&synthLLM{response: "unreachable"},
	)

	_, err := brain.Ask(context.Background(), "anything", "Rahul")
	assert.ErrorIs(t, err, vectorErr)
	assert.Equal(t, 1, graph.calls)
	assert.Equal(t, 1, vector.calls)
}

func TestAskSynthesisPromptContainsAllParts(t *testing.T) {
	vector := &countingRetriever{retrieval: rag.Retrieval{Content: "RETRIEVED FACTS", Found: true}}
	llm := &synthLLM{response: "done"}

	brain := NewBrain(
		&fixedClassifier{dest: rag.DestinationVectorStore},
		vector, &countingRetriever{},
		&personaStore{persona: rahul},
		llm,
	)

	question := "What is generative AI?"
	_, err := brain.Ask(context.Background(), question, "Rahul")
	require.NoError(t, err)

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]
	assert.Contains(t, prompt, rahul.Style)
	assert.Contains(t, prompt, "RETRIEVED FACTS")
	assert.Contains(t, prompt, question)
}

func TestAskUnknownPersona(t *testing.T) {
	brain := NewBrain(
		&fixedClassifier{dest: rag.DestinationVectorStore},
		&countingRetriever{}, &countingRetriever{},
		&personaStore{err: rag.ErrUnknownPersona},
		&synthLLM{},
	)

	_, err := brain.Ask(context.Background(), "anything", "Nobody")
	assert.ErrorIs(t, err, rag.ErrUnknownPersona)
}

func TestAskRoutingErrorPropagates(t *testing.T) {
	routeErr := errors.New("router down")
	brain := NewBrain(
		&fixedClassifier{err: routeErr},
		&countingRetriever{}, &countingRetriever{},
		&personaStore{persona: rahul},
		&synthLLM{},
	)

	_, err := brain.Ask(context.Background(), "anything", "Rahul")
	assert.ErrorIs(t, err, routeErr)
}
