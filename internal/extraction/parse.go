package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseChequeJSON parses the extractor's response text into
// ChequeFields. The model sometimes wraps its JSON in markdown code
// fences; those are stripped before locating the object boundaries.
// No field-level validation happens here: a malformed date must reach
// the normalizer, which owns that failure.
func parseChequeJSON(text string) (*ChequeFields, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	var fields ChequeFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	return &fields, nil
}
