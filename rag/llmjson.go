package rag

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// UnmarshalLLMJSON parses JSON produced by a language model. Models wrap
// answers in markdown fences, add prose around the object, or emit slightly
// malformed JSON, so plain unmarshaling is only the first attempt.
func UnmarshalLLMJSON(input string, out any) error {
	input = stripCodeFence(input)

	if err := json.Unmarshal([]byte(input), out); err == nil {
		return nil
	}

	// double-encoded: a JSON string whose value is the actual object
	var asString string
	if err := json.Unmarshal([]byte(input), &asString); err == nil {
		asString = strings.TrimSpace(asString)
		if err := json.Unmarshal([]byte(asString), out); err == nil {
			return nil
		}
		input = asString
	}

	if body := extractJSONObject(input); body != "" {
		input = body
	}

	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return fmt.Errorf("model output is not JSON: %w (input: %s)", err, input)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("model output is not JSON after repair: %w (input: %s)", err, input)
	}
	return nil
}

// stripCodeFence removes a surrounding ```json ... ``` block if present
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractJSONObject returns the outermost {...} or [...] span in s,
// for output that surrounds the object with prose
func extractJSONObject(s string) string {
	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(s, pair[0])
		end := strings.LastIndex(s, pair[1])
		if start >= 0 && end > start {
			return s[start : end+1]
		}
	}
	return ""
}
