package bench

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag/engine"
)

// Strategy is one way of answering a question. The benchmark runs every
// strategy against the same question set and compares judge scores.
type Strategy interface {
	Name() string
	Answer(ctx context.Context, question string) (string, error)
}

const groundedAnswerPrompt = "Answer strictly based on this context:\n%s\n\nQuestion: %s"

func generateAnswer(ctx context.Context, model llms.Model, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	response, err := model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return response.Choices[0].Content, nil
}

// BM25Strategy is the keyword-search baseline: rank chunks by BM25, answer
// from the top three
type BM25Strategy struct {
	index *BM25
	model llms.Model
}

// NewBM25Strategy builds the baseline over an already-fetched corpus
func NewBM25Strategy(corpus []string, model llms.Model) *BM25Strategy {
	return &BM25Strategy{index: NewBM25(corpus), model: model}
}

// LoadCorpus pulls every chunk text out of the vector store so BM25 ranks
// the same material the other strategies search
func LoadCorpus(ctx context.Context, store rag.VectorStore, limit int) ([]string, error) {
	docs, err := store.Scroll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch corpus: %w", err)
	}
	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Content != "" {
			texts = append(texts, doc.Content)
		}
	}
	return texts, nil
}

func (s *BM25Strategy) Name() string { return "BM25" }

func (s *BM25Strategy) Answer(ctx context.Context, question string) (string, error) {
	top := s.index.TopN(question, 3)
	prompt := fmt.Sprintf(groundedAnswerPrompt, strings.Join(top, "\n"), question)
	return generateAnswer(ctx, s.model, prompt)
}

// NaiveVectorStrategy answers from plain top-k vector retrieval
type NaiveVectorStrategy struct {
	retriever rag.Retriever
	model     llms.Model
}

// NewNaiveVectorStrategy creates the vector baseline
func NewNaiveVectorStrategy(retriever rag.Retriever, model llms.Model) *NaiveVectorStrategy {
	return &NaiveVectorStrategy{retriever: retriever, model: model}
}

func (s *NaiveVectorStrategy) Name() string { return "Naive Vector" }

func (s *NaiveVectorStrategy) Answer(ctx context.Context, question string) (string, error) {
	retrieval, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(groundedAnswerPrompt, retrieval.Content, question)
	return generateAnswer(ctx, s.model, prompt)
}

// HyDEStrategy first asks the model to hallucinate a plausible answer, then
// searches the vector store with that passage instead of the raw question.
// The fake answer matches stored chunks on intent better than a short
// question does.
type HyDEStrategy struct {
	retriever rag.Retriever
	model     llms.Model
}

// NewHyDEStrategy creates the hypothetical-document baseline
func NewHyDEStrategy(retriever rag.Retriever, model llms.Model) *HyDEStrategy {
	return &HyDEStrategy{retriever: retriever, model: model}
}

func (s *HyDEStrategy) Name() string { return "HyDE" }

func (s *HyDEStrategy) Answer(ctx context.Context, question string) (string, error) {
	hypothetical, err := generateAnswer(ctx, s.model,
		fmt.Sprintf("Write a hypothetical passage that answers the question: %s", question))
	if err != nil {
		return "", err
	}

	retrieval, err := s.retriever.Retrieve(ctx, hypothetical)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(groundedAnswerPrompt, retrieval.Content, question)
	return generateAnswer(ctx, s.model, prompt)
}

// graphOnlyRefusal is emitted when the graph has no answer; there is
// deliberately no vector fallback in this strategy
const graphOnlyRefusal = "I could not find an answer in the Knowledge Graph."

// GraphOnlyStrategy answers from the knowledge graph alone
type GraphOnlyStrategy struct {
	retriever rag.Retriever
	model     llms.Model
}

// NewGraphOnlyStrategy creates the graph-only baseline
func NewGraphOnlyStrategy(retriever rag.Retriever, model llms.Model) *GraphOnlyStrategy {
	return &GraphOnlyStrategy{retriever: retriever, model: model}
}

func (s *GraphOnlyStrategy) Name() string { return "Graph Only" }

func (s *GraphOnlyStrategy) Answer(ctx context.Context, question string) (string, error) {
	retrieval, err := s.retriever.Retrieve(ctx, question)
	if err != nil || !retrieval.Found || strings.Contains(retrieval.Content, "I don't know") {
		return graphOnlyRefusal, nil
	}
	prompt := fmt.Sprintf(groundedAnswerPrompt, retrieval.Content, question)
	return generateAnswer(ctx, s.model, prompt)
}

// AgenticStrategy is the full pipeline under test: routing, hybrid
// retrieval with fallback, persona-adapted synthesis. It always asks as the
// same user so persona bias is constant across questions.
type AgenticStrategy struct {
	brain  *engine.Brain
	userID string
}

// NewAgenticStrategy wraps the full engine for benchmarking
func NewAgenticStrategy(brain *engine.Brain, userID string) *AgenticStrategy {
	if userID == "" {
		userID = "Ram"
	}
	return &AgenticStrategy{brain: brain, userID: userID}
}

func (s *AgenticStrategy) Name() string { return "Agentic Hybrid" }

func (s *AgenticStrategy) Answer(ctx context.Context, question string) (string, error) {
	answer, err := s.brain.Ask(ctx, question, s.userID)
	if err != nil {
		return "", err
	}
	return answer.Text, nil
}
