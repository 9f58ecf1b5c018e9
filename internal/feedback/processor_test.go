package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/llm"
)

func testBrief() adgen.CampaignBrief {
	return adgen.CampaignBrief{
		ProductName:    "NYU Merchandise",
		Description:    "Spring apparel",
		TargetAudience: "NYU students",
		CampaignGoals:  "spring purple collection",
	}
}

func testAd() adgen.OriginalAd {
	return adgen.OriginalAd{
		AdType:     adgen.Headline,
		Variations: []string{"Go Purple", "Violet Spring"},
	}
}

func TestProcessor_Process(t *testing.T) {
	t.Run("structured answers", func(t *testing.T) {
		mock := &llm.Mock{Responses: []string{
			"Key issues: too bland. Sentiment: Negative.",
			"```json\n{\"key_issues\":[\"too bland\"],\"positive_aspects\":[\"colors\"],\"elements_to_change\":[\"verbs\"],\"elements_to_keep\":[\"purple\"],\"suggested_improvements\":[\"be bold\"],\"sentiment\":\"Negative\"}\n```",
			"1. Use stronger verbs. Example: Own the Spring.",
			`[{"recommendation":"Use stronger verbs","example":"Own the Spring"}]`,
		}}
		p := New(Config{Completer: mock})

		res, err := p.Process(context.Background(), testAd(), testBrief(), "  Feels bland  ", 4)
		require.NoError(t, err)

		assert.Equal(t, "Feels bland", res.OriginalFeedback)
		assert.Equal(t, 4, res.Score)
		assert.False(t, res.Analysis.ParsingError)
		assert.Equal(t, []string{"too bland"}, res.Analysis.KeyIssues)
		assert.Equal(t, "Negative", res.Analysis.Sentiment)
		assert.Equal(t, []Recommendation{{Recommendation: "Use stronger verbs", Example: "Own the Spring"}}, res.Recommendations)

		require.Len(t, mock.Requests, 4)

		analysis := mock.Requests[0]
		assert.Equal(t, 0.3, analysis.Temperature)
		assert.Equal(t, 1200, analysis.MaxTokens)
		assert.Contains(t, analysis.Prompt, "Variation 1: Go Purple\nVariation 2: Violet Spring")
		assert.Contains(t, analysis.Prompt, "Feels bland\nScore: 4/10")

		structure := mock.Requests[1]
		assert.Equal(t, 0.1, structure.Temperature)
		assert.Equal(t, 800, structure.MaxTokens)
		assert.Contains(t, structure.Prompt, "Key issues: too bland")

		recommend := mock.Requests[2]
		assert.Equal(t, 0.4, recommend.Temperature)
		assert.Contains(t, recommend.Prompt, "Key issues identified:\n- too bland")
		assert.Contains(t, recommend.Prompt, "Elements to change:\n- verbs")

		assert.Contains(t, mock.Requests[3].Prompt, "JSON array")
	})

	t.Run("unparseable answers fall back to defaults", func(t *testing.T) {
		mock := &llm.Mock{Responses: []string{
			"free text analysis",
			"sorry, no JSON today",
			"some recommendations",
			"still no JSON",
		}}
		p := New(Config{Completer: mock})

		res, err := p.Process(context.Background(), testAd(), testBrief(), "Meh", 0)
		require.NoError(t, err)

		assert.True(t, res.Analysis.ParsingError)
		assert.Equal(t, "free text analysis", res.Analysis.RawAnalysis)
		assert.Equal(t, "Neutral", res.Analysis.Sentiment)
		assert.Equal(t, DefaultRecommendations(), res.Recommendations)
		assert.Len(t, res.Recommendations, 5)
		assert.NotContains(t, mock.Requests[0].Prompt, "Score:")
	})

	t.Run("empty feedback", func(t *testing.T) {
		p := New(Config{Completer: &llm.Mock{}})
		_, err := p.Process(context.Background(), testAd(), testBrief(), "  ", 5)
		assert.ErrorIs(t, err, adgen.ErrInvalidArgument)
	})

	t.Run("score out of range", func(t *testing.T) {
		p := New(Config{Completer: &llm.Mock{}})
		_, err := p.Process(context.Background(), testAd(), testBrief(), "ok", 11)
		assert.ErrorIs(t, err, adgen.ErrInvalidArgument)

		_, err = p.Process(context.Background(), testAd(), testBrief(), "ok", -1)
		assert.ErrorIs(t, err, adgen.ErrInvalidArgument)
	})

	t.Run("service failure propagates", func(t *testing.T) {
		mock := &llm.Mock{Err: &llm.ServiceError{Provider: "test", Err: errors.New("down")}}
		p := New(Config{Completer: mock})
		_, err := p.Process(context.Background(), testAd(), testBrief(), "ok", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, llm.ErrService)
		assert.Contains(t, err.Error(), "analyze feedback")
	})
}

func TestDefaultAnalysis(t *testing.T) {
	a := DefaultAnalysis("raw")
	assert.True(t, a.ParsingError)
	assert.Equal(t, "raw", a.RawAnalysis)
	assert.NotEmpty(t, a.KeyIssues)
	assert.NotEmpty(t, a.SuggestedImprovements)
}
