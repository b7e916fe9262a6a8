package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalLLMJSON(t *testing.T) {
	type routed struct {
		Destination string `json:"destination"`
	}

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"destination": "vector_store"}`, "vector_store"},
		{"fenced", "```json\n{\"destination\": \"graph_store\"}\n```", "graph_store"},
		{"fenced no tag", "```\n{\"destination\": \"vector_store\"}\n```", "vector_store"},
		{"prose around", `Sure! Here is the routing: {"destination": "graph_store"} Hope that helps.`, "graph_store"},
		{"single quotes", `{'destination': 'vector_store'}`, "vector_store"},
		{"trailing comma", `{"destination": "graph_store",}`, "graph_store"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out routed
			require.NoError(t, UnmarshalLLMJSON(tc.input, &out))
			assert.Equal(t, tc.want, out.Destination)
		})
	}
}

func TestUnmarshalLLMJSONRejectsProse(t *testing.T) {
	var out map[string]any
	err := UnmarshalLLMJSON("I cannot answer that question.", &out)
	assert.Error(t, err)
}
