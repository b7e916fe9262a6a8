package bench

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/tmc/langchaingo/llms"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
)

const judgePromptTemplate = `You are a strict evaluator.

QUESTION: %s
GROUND TRUTH: %s
SYSTEM ANSWER: %s

Grade the SYSTEM ANSWER from 0 to 10 based on accuracy and completeness.
If the answer says "I don't know" or is wrong, give 0.

Return ONLY the integer.`

// Judge grades an answer against a ground truth on a 0-10 scale using one
// LLM call. Unreadable grader output scores 0 rather than failing the run.
type Judge struct {
	model  llms.Model
	logger log.Logger
}

// NewJudge creates a judge backed by the given model
func NewJudge(model llms.Model, logger log.Logger) *Judge {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Judge{model: model, logger: logger}
}

// Score grades one answer. A transport failure or a non-numeric verdict both
// come back as 0 so a flaky grader cannot abort a long benchmark run.
func (j *Judge) Score(ctx context.Context, question, groundTruth, answer string) int {
	prompt := fmt.Sprintf(judgePromptTemplate, question, groundTruth, answer)
	verdict, err := generateAnswer(ctx, j.model, prompt)
	if err != nil {
		j.logger.Warn("judge call failed, scoring 0: %v", err)
		return 0
	}
	return ExtractScore(verdict)
}

var scorePattern = regexp.MustCompile(`\d+`)

// ExtractScore pulls the grade out of grader output. The first integer wins,
// so "The score is 8 out of 10" reads as 8; anything non-numeric reads as 0,
// and values above 10 clamp down to 10.
func ExtractScore(verdict string) int {
	match := scorePattern.FindString(verdict)
	if match == "" {
		return 0
	}
	score, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	if score > 10 {
		return 10
	}
	if score < 0 {
		return 0
	}
	return score
}
