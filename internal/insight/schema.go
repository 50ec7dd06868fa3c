package insight

import "github.com/abhisek/lifecompass/internal/llm"

// InsightSchema defines the JSON schema for the narrative interpretation.
var InsightSchema = &llm.Schema{
	Name:        "assessment-insight",
	Description: "A short interpretation of a self-assessment's strongest directions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 sentence overview of the profile, in the language of the category labels",
			},
			"highlights": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{
							"type":        "string",
							"description": "Exact label of a top category",
						},
						"note": map[string]any{
							"type":        "string",
							"description": "One or two encouraging sentences about this strength",
						},
					},
					"required":             []any{"category", "note"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"summary", "highlights"},
		"additionalProperties": false,
	},
}
