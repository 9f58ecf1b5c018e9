package llm

import (
	"encoding/json"
	"strings"
)

// DecodeOrDefault decodes the JSON document embedded in a model response
// into a T. Models wrap JSON in prose or markdown fences, so the document is
// taken from the first ```json fence, then any ``` fence, then each balanced
// object or array in order of appearance. A bare null counts as no answer.
// When nothing decodes, fallback is returned with ok set to false.
func DecodeOrDefault[T any](text string, fallback T) (T, bool) {
	for _, candidate := range jsonCandidates(text) {
		if candidate == "" || candidate == "null" {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(candidate), &v); err == nil {
			return v, true
		}
	}
	return fallback, false
}

func jsonCandidates(text string) []string {
	var out []string
	if block, ok := fenced(text, "```json"); ok {
		out = append(out, block)
	}
	if block, ok := fenced(text, "```"); ok {
		out = append(out, block)
	}
	out = append(out, balanced(text)...)
	return append(out, strings.TrimSpace(text))
}

func fenced(text, open string) (string, bool) {
	start := strings.Index(text, open)
	if start == -1 {
		return "", false
	}
	rest := text[start+len(open):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// balanced returns every top-level {...} or [...] span whose brackets
// match, ignoring brackets inside string literals. A start whose brackets
// never close is skipped and scanning resumes after it.
func balanced(text string) []string {
	var out []string
	for from := 0; from < len(text); {
		i := strings.IndexAny(text[from:], "{[")
		if i == -1 {
			break
		}
		start := from + i
		end, ok := matchBracket(text, start)
		if !ok {
			from = start + 1
			continue
		}
		out = append(out, text[start:end])
		from = end
	}
	return out
}

// matchBracket returns the index just past the bracket closing the one at
// start.
func matchBracket(text string, start int) (int, bool) {
	var (
		depth    int
		inString bool
		escaped  bool
	)
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
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
