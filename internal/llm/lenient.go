package llm

import "strings"

// ExtractJSONObject pulls the outermost JSON object out of a model answer,
// tolerating markdown code fences and non-JSON preamble/trailer text.
// If no object is found the input is returned trimmed, so the caller's
// json.Unmarshal fails and the empty-record policy kicks in.
func ExtractJSONObject(s string) []byte {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			return []byte(s[i : j+1])
		}
	}
	return []byte(s)
}
