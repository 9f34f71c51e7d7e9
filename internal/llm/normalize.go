package llm

import (
	"encoding/json"
	"strings"
)

const (
	jsonFenceOpen = "```json"
	fence         = "```"
)

// StripCodeFence removes a leading ```json or ``` opener and a trailing ```
// closer, trimming whitespace before and after.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, jsonFenceOpen) {
		s = s[len(jsonFenceOpen):]
	} else if strings.HasPrefix(s, fence) {
		s = s[len(fence):]
	}
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// Normalize cleans raw model text and parses it as JSON. Only syntax is
// checked; shape validation belongs to the artifact decoders.
func Normalize(raw string) (any, error) {
	cleaned := StripCodeFence(raw)
	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil, &ParseError{Raw: cleaned, Err: err}
	}
	return v, nil
}
