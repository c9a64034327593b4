package llm

// BuildPaperJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// Validation is advisory: the pipeline logs mismatches but keeps whatever
// parsed, so the schema stays deliberately loose.
func BuildPaperJSONSchema() map[string]any {
	props := map[string]any{
		"title":               map[string]any{"type": "string"},
		"authors":             stringListProp(),
		"publication_year":    map[string]any{"type": []any{"string", "integer"}},
		"abstract":            map[string]any{"type": "string"},
		"summary":             map[string]any{"type": "string"},
		"keywords":            stringListProp(),
		"research_questions":  listOrScalarProp(),
		"challenges_and_gaps": stringListProp(),
		"novelties":           stringListProp(),
		"main_findings":       stringListProp(),
		"contributions":       stringListProp(),
		"limitations":         stringListProp(),
		"future_work":         stringListProp(),
		"recommendations":     stringListProp(),
		"conclusion":          map[string]any{"type": "string"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties":           props,
	}
}

func stringListProp() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

// research_questions occasionally comes back as a bare string
func listOrScalarProp() map[string]any {
	return map[string]any{
		"anyOf": []any{
			stringListProp(),
			map[string]any{"type": "string"},
		},
	}
}
