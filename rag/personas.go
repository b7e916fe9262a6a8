package rag

// DefaultPersonas are the two demo users seeded into the graph: a technical
// CTO and a business-focused CEO. Answer synthesis adapts tone and depth to
// whichever one is asking.
func DefaultPersonas() []Persona {
	return []Persona{
		{
			ID:          "Rahul",
			Role:        "CTO",
			Style:       "Technical, detailed, includes code snippets",
			Preferences: []string{"System Architecture", "Python Code"},
		},
		{
			ID:          "Ram",
			Role:        "CEO",
			Style:       "Executive summary, concise, focuses on business value",
			Preferences: []string{"Market Risk", "ROI Analysis"},
		},
	}
}
