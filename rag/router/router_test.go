package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

// scriptedLLM answers every call with a fixed response and records prompts
type scriptedLLM struct {
	response string
	err      error
	prompts  []string
}

func (m *scriptedLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
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

func (m *scriptedLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestLLMClassifierParsesDecision(t *testing.T) {
	llm := &scriptedLLM{response: `{"destination": "graph_store"}`}
	classifier := NewLLMClassifier(llm, nil)

	dest, err := classifier.Classify(context.Background(), "Who is the CEO of Tesla?")
	require.NoError(t, err)
	assert.Equal(t, rag.DestinationGraphStore, dest)

	// question travels as the human message, rubric as the system message
	require.Len(t, llm.prompts, 2)
	assert.Contains(t, llm.prompts[0], "GRAPH_STORE")
	assert.Equal(t, "Who is the CEO of Tesla?", llm.prompts[1])
}

func TestLLMClassifierHandlesFencedOutput(t *testing.T) {
	llm := &scriptedLLM{response: "```json\n{\"destination\": \"vector_store\"}\n```"}
	classifier := NewLLMClassifier(llm, nil)

	dest, err := classifier.Classify(context.Background(), "Summarize the history of Microsoft")
	require.NoError(t, err)
	assert.Equal(t, rag.DestinationVectorStore, dest)
}

func TestLLMClassifierRejectsUnknownDestination(t *testing.T) {
	llm := &scriptedLLM{response: `{"destination": "web_search"}`}
	classifier := NewLLMClassifier(llm, nil)

	_, err := classifier.Classify(context.Background(), "anything")
	assert.ErrorIs(t, err, rag.ErrBadDestination)
}

func TestLLMClassifierPropagatesTransportError(t *testing.T) {
	transportErr := errors.New("rate limited")
	llm := &scriptedLLM{err: transportErr}
	classifier := NewLLMClassifier(llm, nil)

	_, err := classifier.Classify(context.Background(), "anything")
	assert.ErrorIs(t, err, transportErr)
}

func TestRuleClassifier(t *testing.T) {
	classifier := NewRuleClassifier()
	ctx := context.Background()

	cases := []struct {
		question string
		want     rag.Destination
	}{
		{"Who is the CEO of Tesla?", rag.DestinationGraphStore},
		{"Does Microsoft own GitHub?", rag.DestinationGraphStore},
		{"How is OpenAI connected to Microsoft?", rag.DestinationGraphStore},
		{"Summarize the history of Microsoft", rag.DestinationVectorStore},
		{"What is generative AI?", rag.DestinationVectorStore},
	}

	for _, tc := range cases {
		dest, err := classifier.Classify(ctx, tc.question)
		require.NoError(t, err)
		assert.Equal(t, tc.want, dest, tc.question)
	}
}
