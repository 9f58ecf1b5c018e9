package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Sentiment string   `json:"sentiment"`
	Issues    []string `json:"key_issues"`
}

func TestDecodeOrDefault(t *testing.T) {
	fallback := sample{Sentiment: "unknown"}

	tests := []struct {
		name   string
		text   string
		want   sample
		wantOK bool
	}{
		{
			name:   "bare object",
			text:   `{"sentiment":"positive","key_issues":["too long"]}`,
			want:   sample{Sentiment: "positive", Issues: []string{"too long"}},
			wantOK: true,
		},
		{
			name:   "json fence",
			text:   "Here you go:\n```json\n{\"sentiment\":\"negative\"}\n```\nThanks.",
			want:   sample{Sentiment: "negative"},
			wantOK: true,
		},
		{
			name:   "plain fence",
			text:   "```\n{\"sentiment\":\"mixed\"}\n```",
			want:   sample{Sentiment: "mixed"},
			wantOK: true,
		},
		{
			name:   "object in prose with braces in strings",
			text:   `Analysis: {"sentiment":"neutral","key_issues":["uses {curly} text"]} end`,
			want:   sample{Sentiment: "neutral", Issues: []string{"uses {curly} text"}},
			wantOK: true,
		},
		{
			name:   "citation brackets before the object",
			text:   `See [1] and [2]. Result: {"sentiment":"positive"}`,
			want:   sample{Sentiment: "positive"},
			wantOK: true,
		},
		{
			name:   "unclosed brace before the object",
			text:   `Scores {partial, then {"sentiment":"mixed"}`,
			want:   sample{Sentiment: "mixed"},
			wantOK: true,
		},
		{
			name:   "null answer",
			text:   "null",
			want:   fallback,
			wantOK: false,
		},
		{
			name:   "null in a fence",
			text:   "```json\nnull\n```",
			want:   fallback,
			wantOK: false,
		},
		{
			name:   "no json",
			text:   "I could not produce JSON, sorry.",
			want:   fallback,
			wantOK: false,
		},
		{
			name:   "truncated json",
			text:   `{"sentiment":"positive","key_issues":["a"`,
			want:   fallback,
			wantOK: false,
		},
		{
			name:   "empty",
			text:   "",
			want:   fallback,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeOrDefault(tt.text, fallback)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeOrDefault_Array(t *testing.T) {
	type rec struct {
		Recommendation string `json:"recommendation"`
	}
	fallback := []rec{{Recommendation: "default"}}

	got, ok := DecodeOrDefault("Sure:\n[{\"recommendation\":\"shorter\"},{\"recommendation\":\"bolder\"}]", fallback)
	assert.True(t, ok)
	assert.Equal(t, []rec{{"shorter"}, {"bolder"}}, got)

	got, ok = DecodeOrDefault("nothing here", fallback)
	assert.False(t, ok)
	assert.Equal(t, fallback, got)
}

func TestBalanced(t *testing.T) {
	assert.Equal(t, []string{"[1]", `{"a":"]"}`}, balanced(`x [1] y {"a":"]"} z`))
	assert.Equal(t, []string{"{}"}, balanced("{ [ {}"))
	assert.Empty(t, balanced("no brackets"))
}
