package utils

import (
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no JSON object found in text")

// ExtractJSONObject returns the span between the first '{' and the last
// '}' in text. Reasoning engines wrap structured payloads in prose and
// code fences; callers parse the returned span and fall back on error.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}
