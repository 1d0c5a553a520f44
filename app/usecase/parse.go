package usecase

import (
	"encoding/json"
	"strings"

	"interpreter/internal/domain/entity"
)

// extractJSONArray returns the first balanced [ ... ] span in text.
// The scan starts at the first '[' and is aware of string literals and
// escapes, so brackets inside explanation text do not end the span. If
// the span never closes there is no candidate.
func extractJSONArray(text string) (string, bool) {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// parseBatchExplanations recovers the batch result from raw model
// output. It fails (triggering the per-line fallback) unless the text
// contains a JSON array of exactly lineCount well-formed
// {lineNumber, explanation} objects. Entries are reindexed by position
// so lineNumber always runs 1..N in input order, whatever the model
// numbered them.
func parseBatchExplanations(raw string, lineCount int) ([]entity.LineExplanation, bool) {
	candidate, ok := extractJSONArray(raw)
	if !ok {
		return nil, false
	}

	var parsed []entity.LineExplanation
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, false
	}
	if len(parsed) != lineCount {
		return nil, false
	}
	for i := range parsed {
		if parsed[i].Explanation == "" {
			return nil, false
		}
		parsed[i].LineNumber = i + 1
	}
	return parsed, true
}
