package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var variationCountRe = regexp.MustCompile(`(?i)create (\d+) `)

// Mock is an offline Completer for local runs and tests. Scripted
// responses are returned in order; once they run out it answers with a
// numbered list sized from the prompt's "Create N" instruction, or an empty
// JSON document when the prompt asks for JSON.
type Mock struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Requests  []Request
}

// Complete records the request and returns the next scripted response.
func (m *Mock) Complete(_ context.Context, r Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, r)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) > 0 {
		resp := m.Responses[0]
		m.Responses = m.Responses[1:]
		return resp, nil
	}
	return synthesize(r.Prompt), nil
}

// Calls returns how many requests the mock has seen.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

func synthesize(prompt string) string {
	if strings.Contains(prompt, "JSON array") {
		return "[]"
	}
	if strings.Contains(prompt, "JSON") {
		return "{}"
	}

	n := 3
	if m := variationCountRe.FindStringSubmatch(prompt); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			n = v
		}
	}

	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "Variation %d: Sample variation %d.\n\n", i, i)
	}
	return sb.String()
}
