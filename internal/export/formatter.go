// Package export renders generated ads for people and platforms:
// markdown, HTML and terminal output, plus per-platform length checks.
package export

import (
	"strings"
	"unicode/utf8"

	"github.com/sichenz/AdNova/internal/adgen"
)

const (
	// BlueskyMaxLength is the maximum character count for a Bluesky post.
	BlueskyMaxLength = 300

	// TwitterMaxLength is the maximum character count for a Twitter post.
	TwitterMaxLength = 280
)

// PlatformLimit returns the post length limit for a platform, if it has one.
func PlatformLimit(platform string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "twitter", "x":
		return TwitterMaxLength, true
	case "bluesky":
		return BlueskyMaxLength, true
	}
	return 0, false
}

// FitsInLimit checks if text fits within the limit.
func FitsInLimit(text string, limit int) bool {
	return utf8.RuneCountInString(text) <= limit
}

// Truncate shortens text to at most maxLen runes, cutting at a word
// boundary when one is close and ending with "...".
func Truncate(text string, maxLen int) string {
	if FitsInLimit(text, maxLen) {
		return text
	}
	if maxLen <= 3 {
		return string([]rune(text)[:max(maxLen, 0)])
	}

	available := maxLen - 3
	truncated := string([]rune(text)[:available])

	// Find last space to avoid cutting mid-word
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > len(truncated)/2 { // Only use word boundary if not too far back
		truncated = truncated[:lastSpace]
	}

	return strings.TrimRight(truncated, " .,;:!?") + "..."
}

// Check is the length report for one variation.
type Check struct {
	Index  int  `json:"index"`
	Chars  int  `json:"chars"`
	Limit  int  `json:"limit,omitempty"`
	Fits   bool `json:"fits"`
	Failed bool `json:"failed"`
}

// CheckVariations reports the length of each variation against limit.
// A zero limit only flags failed slots.
func CheckVariations(variations []string, limit int) []Check {
	out := make([]Check, len(variations))
	for i, v := range variations {
		c := Check{
			Index:  i + 1,
			Chars:  utf8.RuneCountInString(v),
			Limit:  limit,
			Failed: v == adgen.FailedVariation,
		}
		c.Fits = limit == 0 || c.Chars <= limit
		out[i] = c
	}
	return out
}

// FitToPlatform truncates social media variations to the platform limit.
// Other ad types, platforms without a limit, and failed slots are
// returned unchanged.
func FitToPlatform(adType adgen.AdType, variations []string, platform string) []string {
	out := make([]string, len(variations))
	copy(out, variations)

	limit, ok := PlatformLimit(platform)
	if !ok || adType != adgen.SocialMediaPost {
		return out
	}
	for i, v := range out {
		if v != adgen.FailedVariation {
			out[i] = Truncate(v, limit)
		}
	}
	return out
}
