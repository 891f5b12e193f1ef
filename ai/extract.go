package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// ExtractJSON unmarshals the first-to-last-brace span of text into v. Models
// routinely wrap JSON answers in prose or markdown fences; this strips both.
func ExtractJSON(text string, v any) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return errors.New("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return errors.New("invalid JSON response: " + err.Error())
	}
	return nil
}
