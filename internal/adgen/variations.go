package adgen

import (
	"log/slog"
	"strconv"
	"strings"
)

// FailedVariation fills every slot the parser could not recover. Callers
// must treat it as a failed variation, not as content.
const FailedVariation = "Content generation failed. Please try again."

// ParseVariations splits a raw completion into exactly expected variation
// strings, in order, with numbering markers removed.
//
// It never fails. Boundaries are found line by line, looking for the next
// ordinal only ("Variation n", "Variation n:", "n.", "n:" or a bare "n"),
// so numbering must increase. When that yields too few sections the text is
// re-sliced between ordinal markers, then split into blank-line
// paragraphs. Whatever is still missing is padded with FailedVariation and
// any surplus is dropped.
func ParseVariations(raw string, expected int) []string {
	if expected <= 0 {
		return []string{}
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	out := splitSequential(lines)
	pass := "sequential"

	if len(out) < expected {
		out = append(out, sliceByMarkers(lines, expected, out)...)
		pass = "markers"
	}

	if len(out) < expected {
		if paras := splitParagraphs(lines); len(paras) > len(out) {
			out = paras
			pass = "paragraphs"
		}
	}

	padded := 0
	for len(out) < expected {
		out = append(out, FailedVariation)
		padded++
	}

	slog.Debug("parsed variations",
		"expected", expected,
		"found", len(out)-padded,
		"pass", pass,
		"padded", padded)

	return out[:expected]
}

// splitSequential opens a new section each time a line carries the next
// expected ordinal. Text before the first boundary is kept only when no
// boundary is ever found.
func splitSequential(lines []string) []string {
	var (
		out    []string
		cur    []string
		next   = 1
		opened bool
	)

	seal := func() {
		if s := strings.TrimSpace(strings.Join(cur, "\n")); s != "" {
			out = append(out, s)
		}
		cur = cur[:0]
	}

	for _, line := range lines {
		if rest, ok := matchMarker(line, next, true); ok {
			if opened {
				seal()
			}
			cur = cur[:0]
			if rest != "" {
				cur = append(cur, rest)
			}
			opened = true
			next++
			continue
		}
		if len(cur) == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		cur = append(cur, line)
	}
	seal()

	return out
}

// sliceByMarkers takes, for each ordinal, the lines from its first marker
// up to the next ordinal's marker. Ordinals without a marker are skipped
// and slices already present in have are not repeated.
func sliceByMarkers(lines []string, expected int, have []string) []string {
	seen := make(map[string]bool, len(have))
	for _, s := range have {
		seen[s] = true
	}

	var out []string
	for i := 1; i <= expected; i++ {
		start := findMarker(lines, i, 0)
		if start < 0 {
			continue
		}

		end := len(lines)
		if i < expected {
			if j := findMarker(lines, i+1, start+1); j >= 0 {
				end = j
			}
		}

		first, _ := matchMarker(lines[start], i, false)
		body := append([]string{first}, lines[start+1:end]...)
		s := strings.TrimSpace(strings.Join(body, "\n"))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func findMarker(lines []string, n, from int) int {
	for i := from; i < len(lines); i++ {
		if _, ok := matchMarker(lines[i], n, false); ok {
			return i
		}
	}
	return -1
}

// splitParagraphs returns the blank-line separated blocks of the text with
// any leading marker removed.
func splitParagraphs(lines []string) []string {
	var (
		out []string
		cur []string
	)
	flush := func() {
		if s := strings.TrimSpace(strings.Join(cur, "\n")); s != "" {
			out = append(out, stripAnyMarker(s))
		}
		cur = cur[:0]
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return out
}

// matchMarker reports whether line opens ordinal n and returns the text
// that follows the marker on the same line. A marker must not run into
// another digit, so "1." does not match "10." or "1.5".
func matchMarker(line string, n int, allowBare bool) (string, bool) {
	s, closer := trimEmphasis(strings.TrimSpace(line))
	num := strconv.Itoa(n)

	if after, ok := cutPrefixFold(s, "variation"); ok {
		after = strings.TrimLeft(after, " \t")
		rest, ok := strings.CutPrefix(after, num)
		if !ok {
			return "", false
		}
		if rest != "" && !isMarkerTail(rest[0]) {
			return "", false
		}
		return cleanRest(rest, closer), true
	}

	rest, ok := strings.CutPrefix(s, num)
	if !ok {
		return "", false
	}
	if rest == "" {
		return "", allowBare
	}
	if rest[0] != '.' && rest[0] != ':' {
		return "", false
	}
	if len(rest) > 1 && isDigit(rest[1]) {
		return "", false
	}
	return cleanRest(rest, closer), true
}

// stripAnyMarker removes a leading "Variation n", "n." or "n:" whatever
// the ordinal.
func stripAnyMarker(s string) string {
	t, closer := trimEmphasis(s)

	after, hasWord := cutPrefixFold(t, "variation")
	if hasWord {
		after = strings.TrimLeft(after, " \t")
	}

	digits := 0
	for digits < len(after) && isDigit(after[digits]) {
		digits++
	}
	if digits == 0 {
		return s
	}
	rest := after[digits:]

	switch {
	case hasWord && (rest == "" || isMarkerTail(rest[0])):
	case !hasWord && rest != "" && (rest[0] == '.' || rest[0] == ':') && (len(rest) == 1 || !isDigit(rest[1])):
	default:
		return s
	}
	return cleanRest(rest, closer)
}

// cleanRest removes what is left of a marker: the emphasis closer, one
// separator and the whitespace after it. The content is left untouched.
func cleanRest(rest, closer string) string {
	rest = cutCloser(rest, closer)
	rest = strings.TrimLeft(rest, " \t")
	if rest != "" {
		switch c := rest[0]; {
		case c == ':' || c == '.' || c == ')':
			rest = rest[1:]
		case c == '-' && (len(rest) == 1 || rest[1] == ' ' || rest[1] == '\t'):
			rest = rest[1:]
		}
	}
	rest = cutCloser(rest, closer)
	return strings.TrimSpace(rest)
}

func cutCloser(s, closer string) string {
	if closer == "" {
		return s
	}
	s, _ = strings.CutPrefix(s, closer)
	return s
}

// trimEmphasis drops markdown heading and emphasis characters that models
// wrap around markers, e.g. "**Variation 1:**" or "### 2.". It returns the
// emphasis run it removed so the matching closer after the marker can go
// too.
func trimEmphasis(s string) (string, string) {
	t := strings.TrimLeft(s, "# \t")
	u := strings.TrimLeft(t, "*_")
	return u, t[:len(t)-len(u)]
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func isMarkerTail(c byte) bool {
	switch c {
	case ' ', '\t', ':', '.', ')', '-', '*', '_':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
