package llm

import (
	"strings"
)

// ExtractJSON pulls the JSON object out of a model response. Models
// sometimes wrap the payload in markdown fences or surround it with
// prose despite instructions, so the parser is lenient: fenced blocks
// win, otherwise everything between the first and last brace is taken.
func ExtractJSON(content string) []byte {
	trimmed := strings.TrimSpace(content)

	if idx := strings.Index(trimmed, "```json"); idx >= 0 {
		rest := trimmed[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return []byte(strings.TrimSpace(rest[:end]))
		}
		return []byte(strings.TrimSpace(rest))
	}
	if idx := strings.Index(trimmed, "```"); idx >= 0 {
		rest := trimmed[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return []byte(strings.TrimSpace(rest[:end]))
		}
		return []byte(strings.TrimSpace(rest))
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return []byte(trimmed[start : end+1])
	}
	return []byte(trimmed)
}
