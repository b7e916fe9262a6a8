package bench

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
)

type verdictLLM struct {
	response string
	err      error
}

func (m *verdictLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.response}},
	}, nil
}

func (m *verdictLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return m.response, m.err
}

func TestExtractScore(t *testing.T) {
	cases := []struct {
		verdict string
		want    int
	}{
		{"8", 8},
		{" 10 ", 10},
		{"The score is 8 out of 10", 8},
		{"I would give this a 7.", 7},
		{"I cannot grade this", 0},
		{"", 0},
		{"9999", 10},
		{"0", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractScore(tc.verdict), "verdict %q", tc.verdict)
	}
}

func TestJudgeScoresVerdict(t *testing.T) {
	judge := NewJudge(&verdictLLM{response: "9"}, nil)
	score := judge.Score(context.Background(), "q", "truth", "answer")
	assert.Equal(t, 9, score)
}

func TestJudgeFailureScoresZero(t *testing.T) {
	judge := NewJudge(&verdictLLM{err: errors.New("rate limited")}, nil)
	score := judge.Score(context.Background(), "q", "truth", "answer")
	assert.Equal(t, 0, score)
}
