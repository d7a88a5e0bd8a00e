package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// StripCodeFences removes a surrounding markdown code block, if any.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	endIdx := len(lines)
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}
	if endIdx <= 1 {
		return ""
	}
	return strings.TrimSpace(strings.Join(lines[1:endIdx], "\n"))
}

// DecodeJSON parses a model reply into v, tolerating code fences and prose
// around a single JSON object.
func DecodeJSON(text string, v any) error {
	text = StripCodeFences(text)
	if text == "" {
		return errors.New("empty response")
	}
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return errors.New("no JSON object in response")
	}
	return json.Unmarshal([]byte(text[start:end+1]), v)
}
