// Package extract turns raw chunk text into graph entities and
// relationships with a structured LLM call.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/log"
	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

const extractionPrompt = `You are a knowledge graph builder. Extract entities and relationships from the text below.

Rules:
- Entities are companies, people, products, organizations and technologies.
- Use the most complete name the text gives for an entity (e.g. "Elon Musk", not "Musk").
- Labels are one of: Person, Company, Product, Organization, Technology.
- Relationship types are UPPER_SNAKE_CASE verbs such as OWNS, CEO_OF, FOUNDED, PARTNERED_WITH, COMPETES_WITH, ACQUIRED, SUBSIDIARY_OF, DEVELOPED.
- Every relationship endpoint must appear in the entities list.
- Extract only facts stated in the text.

Respond with a JSON object:
{"entities": [{"name": "...", "label": "..."}], "relationships": [{"source": "...", "target": "...", "type": "..."}]}
Output only the JSON object.

TEXT:
%s`

// GraphExtraction is one chunk batch's worth of extracted graph data
type GraphExtraction struct {
	Entities      []rag.Entity
	Relationships []rag.Relationship
}

// LLMExtractor implements rag.EntityExtractor with one model call per batch
type LLMExtractor struct {
	model  llms.Model
	logger log.Logger
}

// NewLLMExtractor creates an extractor backed by the given model
func NewLLMExtractor(model llms.Model, logger log.Logger) *LLMExtractor {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &LLMExtractor{model: model, logger: logger}
}

// Extract pulls entities and relationships out of a batch of chunks. The
// chunks travel in one prompt, so batch size bounds prompt length.
func (e *LLMExtractor) Extract(ctx context.Context, chunks []rag.Document) ([]rag.Entity, []rag.Relationship, error) {
	if len(chunks) == 0 {
		return nil, nil, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	prompt := fmt.Sprintf(extractionPrompt, strings.Join(texts, "\n\n---\n\n"))

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	response, err := e.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return nil, nil, fmt.Errorf("extraction call failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, nil, fmt.Errorf("extraction call returned no choices")
	}

	extraction, err := parseExtraction(response.Choices[0].Content)
	if err != nil {
		return nil, nil, err
	}

	e.logger.Debug("extracted %d entities, %d relationships from %d chunks",
		len(extraction.Entities), len(extraction.Relationships), len(chunks))
	return extraction.Entities, extraction.Relationships, nil
}

// parseExtraction decodes the model output and drops malformed rows instead
// of failing the batch. Relationships pointing at entities the model forgot
// to list get those entities backfilled so graph writes cannot dangle.
func parseExtraction(raw string) (GraphExtraction, error) {
	var decoded struct {
		Entities []struct {
			Name  string `json:"name"`
			Label string `json:"label"`
		} `json:"entities"`
		Relationships []struct {
			Source string `json:"source"`
			Target string `json:"target"`
			Type   string `json:"type"`
		} `json:"relationships"`
	}
	if err := rag.UnmarshalLLMJSON(raw, &decoded); err != nil {
		return GraphExtraction{}, fmt.Errorf("extraction output unreadable: %w", err)
	}

	var out GraphExtraction
	known := make(map[string]bool)
	for _, ent := range decoded.Entities {
		name := strings.TrimSpace(ent.Name)
		if name == "" || known[name] {
			continue
		}
		label := strings.TrimSpace(ent.Label)
		if label == "" {
			label = "Entity"
		}
		known[name] = true
		out.Entities = append(out.Entities, rag.Entity{Name: name, Label: label})
	}

	for _, rel := range decoded.Relationships {
		source := strings.TrimSpace(rel.Source)
		target := strings.TrimSpace(rel.Target)
		relType := strings.TrimSpace(rel.Type)
		if source == "" || target == "" || relType == "" {
			continue
		}
		for _, name := range []string{source, target} {
			if !known[name] {
				known[name] = true
				out.Entities = append(out.Entities, rag.Entity{Name: name, Label: "Entity"})
			}
		}
		out.Relationships = append(out.Relationships, rag.Relationship{
			Source: source,
			Target: target,
			Type:   strings.ToUpper(strings.ReplaceAll(relType, " ", "_")),
		})
	}

	return out, nil
}

var _ rag.EntityExtractor = (*LLMExtractor)(nil)
