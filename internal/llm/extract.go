package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the first JSON object out of a completion response.
// Models wrap their output in prose or markdown fences often enough that
// we cut from the first '{' to the last '}' before parsing. On failure the
// raw text is returned alongside the error so callers can surface it.
func ExtractJSON(content string) (json.RawMessage, string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, content, fmt.Errorf("no JSON object found in response")
	}

	candidate := content[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, content, fmt.Errorf("extracted text is not valid JSON")
	}
	return json.RawMessage(candidate), content, nil
}
