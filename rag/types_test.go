package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDestination(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Destination
		wantErr bool
	}{
		{"vector", "vector_store", DestinationVectorStore, false},
		{"graph", "graph_store", DestinationGraphStore, false},
		{"free text", "use the graph please", "", true},
		{"empty", "", "", true},
		{"case sensitive", "VECTOR_STORE", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDestination(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrBadDestination)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPersonaProfile(t *testing.T) {
	p := Persona{
		ID:          "Rahul",
		Role:        "CTO",
		Style:       "Technical, detailed, includes code snippets",
		Preferences: []string{"System Architecture", "Python Code"},
	}

	profile := p.Profile()
	assert.Contains(t, profile, "Rahul")
	assert.Contains(t, profile, "CTO")
	assert.Contains(t, profile, "Technical, detailed, includes code snippets")
	assert.Contains(t, profile, "System Architecture, Python Code")
}

func TestPersonaProfileNoPreferences(t *testing.T) {
	p := Persona{ID: "Ram", Role: "CEO", Style: "Concise"}
	assert.NotContains(t, p.Profile(), "Interests")
}

func TestQueryTableFormat(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		tab := QueryTable{Columns: []string{"a"}}
		assert.True(t, tab.Empty())
		assert.Equal(t, "", tab.Format())
	})

	t.Run("rows with columns", func(t *testing.T) {
		tab := QueryTable{
			Columns: []string{"c.id", "relationship", "p.id"},
			Rows: [][]any{
				{"Tesla", "CEO_OF", "Elon Musk"},
				{"Tesla", "ACQUIRED", "SolarCity"},
			},
		}
		out := tab.Format()
		assert.Contains(t, out, "c.id: Tesla | relationship: CEO_OF | p.id: Elon Musk")
		assert.Contains(t, out, "relationship: ACQUIRED")
	})

	t.Run("row wider than header", func(t *testing.T) {
		tab := QueryTable{Columns: []string{"only"}, Rows: [][]any{{"a", "b"}}}
		assert.Equal(t, "only: a | b", tab.Format())
	})
}

func TestEmptyVectorRetrieval(t *testing.T) {
	r := EmptyVectorRetrieval()
	assert.False(t, r.Found)
	assert.Equal(t, NoVectorResults, r.Content)
}
