package llm

import (
	"encoding/json"
	"strings"
)

// DecodeObject pulls a JSON object out of raw model output. Models wrap
// answers in prose or markdown fences often enough that a strict
// json.Unmarshal on the whole payload is the last resort, not the first.
func DecodeObject(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)

	// Fenced ```json ... ``` block first.
	if body, ok := fencedJSON(text); ok {
		var out map[string]any
		if err := json.Unmarshal([]byte(body), &out); err == nil {
			return out, nil
		}
	}

	// Then the outermost { ... } span.
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			var out map[string]any
			if err := json.Unmarshal([]byte(text[start:end+1]), &out); err == nil {
				return out, nil
			}
		}
	}

	// Finally the payload as-is.
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, ErrInvalidJSON
	}
	return out, nil
}

func fencedJSON(text string) (string, bool) {
	start := strings.Index(text, "```json")
	if start < 0 {
		return "", false
	}
	rest := text[start+len("```json"):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
