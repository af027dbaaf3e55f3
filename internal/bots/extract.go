package bots

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// extractJSON pulls a JSON object out of a model response. Models keep
// wrapping answers in markdown fences or prose despite the prompt, so
// this tries the fenced block first, then the body as-is, then the
// first balanced braced block.
func extractJSON(raw string) ([]byte, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, errors.New("empty model response")
	}

	if match := fencedJSON.FindStringSubmatch(candidate); match != nil {
		candidate = match[1]
	}

	if json.Valid([]byte(candidate)) {
		return []byte(candidate), nil
	}

	if braced := firstBracedObject(candidate); braced != "" && json.Valid([]byte(braced)) {
		return []byte(braced), nil
	}

	return nil, errors.New("model response is not valid JSON")
}

// firstBracedObject returns the first balanced {...} block in text.
func firstBracedObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
