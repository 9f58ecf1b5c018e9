package adgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_EveryType(t *testing.T) {
	for _, at := range AdTypes() {
		t.Run(string(at), func(t *testing.T) {
			p, err := BuildPrompt(at, nyuBrief(), 4, nil)
			require.NoError(t, err)

			assert.NotEmpty(t, p.System)
			assert.True(t, strings.HasPrefix(p.User, "Create 4 compelling "+at.Label()+" variations"))
			assert.Contains(t, p.User, "Product/Service: NYU Merchandise")
			assert.Contains(t, p.User, "Target Audience: NYU students")
			assert.Contains(t, p.User, "Tone: professional")
			assert.Contains(t, p.User, "Key Selling Points: Official licensed gear, Limited spring colors")
			assert.True(t, strings.HasSuffix(p.User, "Present each variation clearly numbered."))
			assert.NotContains(t, p.User, "Brand Voice:")
		})
	}
}

func TestBuildPrompt_Unsupported(t *testing.T) {
	_, err := BuildPrompt("infomercial", nyuBrief(), 3, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBuildPrompt_SocialPlatforms(t *testing.T) {
	tests := []struct {
		platform string
		want     string
	}{
		{"Instagram", "Platform: Instagram"},
		{"facebook", "Platform: Facebook"},
		{"Twitter", "Platform: Twitter/X"},
		{"X", "Platform: Twitter/X"},
		{"LinkedIn", "Platform: LinkedIn"},
		{"", "Platform: General social media"},
		{"TikTok", "Platform: General social media"},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			b := nyuBrief()
			b.Platform = tt.platform
			p, err := BuildPrompt(SocialMediaPost, b, 3, nil)
			require.NoError(t, err)
			assert.Contains(t, p.User, tt.want)
		})
	}
}

func TestBuildPrompt_GoalInstructions(t *testing.T) {
	b := nyuBrief()

	b.CampaignGoals = "Brand awareness among freshmen"
	p, _ := BuildPrompt(Headline, b, 3, nil)
	assert.Contains(t, p.User, "Headline Type: Awareness/Brand Building")

	b.CampaignGoals = "Drive conversion"
	p, _ = BuildPrompt(Headline, b, 3, nil)
	assert.Contains(t, p.User, "Headline Type: Conversion/Direct Response")

	b.CampaignGoals = "Monthly newsletter"
	p, _ = BuildPrompt(EmailSubject, b, 3, nil)
	assert.Contains(t, p.User, "Email Type: Newsletter")

	b.CampaignGoals = "Launch announcement"
	p, _ = BuildPrompt(EmailSubject, b, 3, nil)
	assert.Contains(t, p.User, "Email Type: Announcement")

	b.CampaignGoals = "Retargeting cart abandoners"
	p, _ = BuildPrompt(BannerCopy, b, 3, nil)
	assert.Contains(t, p.User, "Banner Type: Retargeting Ad")

	b.Platform = "Google Display Network"
	p, _ = BuildPrompt(BannerCopy, b, 3, nil)
	assert.Contains(t, p.User, "Banner Type: Display Ad")

	b.CampaignGoals = "spring purple collection"
	b.Platform = ""
	p, _ = BuildPrompt(Headline, b, 3, nil)
	assert.NotContains(t, p.User, "Headline Type:")
}

func TestBuildPrompt_BrandVoice(t *testing.T) {
	voice := BrandVoice{
		"personality":  "Spirited and proud",
		"catch_phrase": "Go Violets",
	}
	p, err := BuildPrompt(ProductDescription, nyuBrief(), 2, voice)
	require.NoError(t, err)

	assert.Contains(t, p.User, "Brand Voice:\nTone: professional\nPersonality: Spirited and proud\nLanguage Style: Not specified\nCatch Phrase: Go Violets\n")
	assert.Contains(t, p.User, "Be approximately 150-200 words")
}

func TestBuildPrompt_DefaultTone(t *testing.T) {
	b := nyuBrief()
	b.Tone = ""
	p, _ := BuildPrompt(RadioAd, b, 1, nil)
	assert.Contains(t, p.User, "Tone: professional")
	assert.Contains(t, p.System, "radio ad")
}

func TestBuildRegeneratePrompt(t *testing.T) {
	orig := OriginalAd{AdType: EmailSubject, Variations: []string{"Spring is purple", "Violet days"}}
	fb := &FeedbackContext{
		Feedback:  "Too generic",
		Score:     4,
		Processed: map[string]any{"sentiment": "negative"},
	}
	changes := map[string]string{"tone": "urgent", "length": "under 40 characters"}

	p := BuildRegeneratePrompt(orig, nyuBrief(), fb, changes)

	assert.Contains(t, p.User, "improve the following email subject line")
	assert.Contains(t, p.User, "ORIGINAL CONTENT:\nVariation 1: Spring is purple\nVariation 2: Violet days\n")
	assert.Contains(t, p.User, "Client Feedback:\nToo generic\nScore: 4/10\n")
	assert.Contains(t, p.User, "\"sentiment\": \"negative\"")
	assert.Contains(t, p.User, "Requested Changes:\n- length: under 40 characters\n- tone: urgent\n")
	assert.True(t, strings.HasSuffix(p.User, "Present each variation clearly numbered."))

	again := BuildRegeneratePrompt(orig, nyuBrief(), fb, changes)
	assert.Equal(t, p, again)
}
