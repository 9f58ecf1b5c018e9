package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/config"
	"github.com/sichenz/AdNova/internal/db"
	"github.com/sichenz/AdNova/internal/db/dbtest"
	"github.com/sichenz/AdNova/internal/feedback"
	"github.com/sichenz/AdNova/internal/llm"
	"github.com/sichenz/AdNova/internal/memory"
)

type fakeMemory struct {
	mu      sync.Mutex
	indexed map[memory.Kind][]string
	hits    []memory.Hit
	closed  bool
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{indexed: map[memory.Kind][]string{}}
}

func (f *fakeMemory) add(k memory.Kind, id string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed[k] = append(f.indexed[k], id)
	return uint64(len(f.indexed[k])), nil
}

func (f *fakeMemory) IndexBrief(_ context.Context, id string, _ adgen.CampaignBrief) (uint64, error) {
	return f.add(memory.KindBrief, id)
}

func (f *fakeMemory) IndexAd(_ context.Context, id, _, _ string, _ adgen.AdType, _ []string) (uint64, error) {
	return f.add(memory.KindAd, id)
}

func (f *fakeMemory) IndexFeedback(_ context.Context, id, _, _, _ string) (uint64, error) {
	return f.add(memory.KindFeedback, id)
}

func (f *fakeMemory) Search(_ context.Context, _ string, k int) ([]memory.Hit, error) {
	return f.hits[:min(k, len(f.hits))], nil
}

func (f *fakeMemory) SimilarCampaigns(_ context.Context, _ string, k int) ([]memory.Hit, error) {
	return f.hits[:min(k, len(f.hits))], nil
}

func (f *fakeMemory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, ids := range f.indexed {
		n += len(ids)
	}
	return n
}

func (f *fakeMemory) Close() error {
	f.closed = true
	return nil
}

func newTestApp(t *testing.T, completer llm.Completer, mem Memory) *App {
	t.Helper()
	cfg := &config.Config{
		DatabasePath:          "unused",
		LLMProvider:           "mock",
		CreativeTemperature:   0.9,
		AnalyticalTemperature: 0.3,
		MaxTokens:             1000,
		MaxVariations:         5,
	}
	return Assemble(cfg, dbtest.NewStore(t), completer, mem)
}

func nyuBrief() adgen.CampaignBrief {
	return adgen.CampaignBrief{
		ProductName:      "NYU Merchandise",
		Description:      "Official NYU apparel and accessories",
		TargetAudience:   "NYU students, alumni, and fans",
		CampaignGoals:    "Promote the spring purple collection",
		KeySellingPoints: []string{"Official NYU gear", "Sustainable materials"},
		Platform:         "instagram",
	}
}

func TestApp_CreateBrief(t *testing.T) {
	mem := newFakeMemory()
	a := newTestApp(t, &llm.Mock{}, mem)
	ctx := context.Background()

	b, err := a.CreateBrief(ctx, nyuBrief())
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "professional", b.Tone)
	assert.Equal(t, []string{"Official NYU gear", "Sustainable materials"}, b.KeySellingPoints)
	assert.Equal(t, "instagram", b.Platform)
	assert.Equal(t, []string{b.ID}, mem.indexed[memory.KindBrief])

	got, err := a.GetBrief(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.CampaignBrief, got.CampaignBrief)

	list, err := a.ListBriefs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	invalid := nyuBrief()
	invalid.CampaignGoals = "  "
	_, err = a.CreateBrief(ctx, invalid)
	assert.ErrorIs(t, err, adgen.ErrInvalidArgument)

	_, err = a.GetBrief(ctx, "missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestApp_GenerateAd(t *testing.T) {
	ctx := context.Background()

	t.Run("default variation count", func(t *testing.T) {
		mem := newFakeMemory()
		mock := &llm.Mock{}
		a := newTestApp(t, mock, mem)
		b, err := a.CreateBrief(ctx, nyuBrief())
		require.NoError(t, err)

		ad, err := a.GenerateAd(ctx, b.ID, GenerateRequest{AdType: "headline"})
		require.NoError(t, err)

		assert.Equal(t, adgen.Headline, ad.AdType)
		assert.Equal(t, []string{"Sample variation 1.", "Sample variation 2.", "Sample variation 3."}, ad.Variations)
		assert.Zero(t, ad.FailedCount)
		assert.Empty(t, ad.ParentID)
		assert.Equal(t, []string{ad.ID}, mem.indexed[memory.KindAd])
		assert.Equal(t, 1, mock.Calls())

		stored, err := a.GetAd(ctx, ad.ID)
		require.NoError(t, err)
		assert.Equal(t, ad.Variations, stored.Variations)
	})

	t.Run("failed slots are counted", func(t *testing.T) {
		mock := &llm.Mock{Responses: []string{"Variation 1: Only one came back"}}
		a := newTestApp(t, mock, nil)
		b, err := a.CreateBrief(ctx, nyuBrief())
		require.NoError(t, err)

		ad, err := a.GenerateAd(ctx, b.ID, GenerateRequest{AdType: "banner_copy", Variations: 3})
		require.NoError(t, err)
		assert.Equal(t, 2, ad.FailedCount)
		assert.Equal(t, adgen.FailedVariation, ad.Variations[2])
	})

	t.Run("brand voice", func(t *testing.T) {
		mock := &llm.Mock{}
		a := newTestApp(t, mock, nil)
		b, err := a.CreateBrief(ctx, nyuBrief())
		require.NoError(t, err)

		ad, err := a.GenerateAd(ctx, b.ID, GenerateRequest{AdType: "email_subject", Variations: 2, UseBrandVoice: true})
		require.NoError(t, err)

		assert.Len(t, ad.Variations, 2)
		assert.Equal(t, "professional", ad.BrandVoice["tone"])
		assert.NotEmpty(t, ad.BrandVoice["content_type_specific"])
		// guide, structure, adaptation, generation
		assert.Equal(t, 4, mock.Calls())
		assert.Contains(t, mock.Requests[3].Prompt, "Brand Voice")
	})

	t.Run("unsupported ad type", func(t *testing.T) {
		a := newTestApp(t, &llm.Mock{}, nil)
		_, err := a.GenerateAd(ctx, "whatever", GenerateRequest{AdType: "billboard"})
		assert.ErrorIs(t, err, adgen.ErrInvalidArgument)
	})

	t.Run("missing brief", func(t *testing.T) {
		a := newTestApp(t, &llm.Mock{}, nil)
		_, err := a.GenerateAd(ctx, "missing", GenerateRequest{AdType: "headline"})
		assert.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("service failure", func(t *testing.T) {
		mock := &llm.Mock{}
		a := newTestApp(t, mock, nil)
		b, err := a.CreateBrief(ctx, nyuBrief())
		require.NoError(t, err)

		mock.Err = &llm.ServiceError{Provider: "test", StatusCode: 503, Err: errors.New("unavailable")}
		_, err = a.GenerateAd(ctx, b.ID, GenerateRequest{AdType: "headline"})
		assert.ErrorIs(t, err, llm.ErrService)

		ads, err := a.ListAds(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, ads)
	})
}

func TestApp_GenerateCampaign(t *testing.T) {
	ctx := context.Background()

	t.Run("default ad types in order", func(t *testing.T) {
		a := newTestApp(t, &llm.Mock{}, nil)
		b, err := a.CreateBrief(ctx, nyuBrief())
		require.NoError(t, err)

		ads, err := a.GenerateCampaign(ctx, b.ID, CampaignRequest{Variations: 2})
		require.NoError(t, err)
		require.Len(t, ads, len(adgen.DefaultCampaignTypes))
		for i, ad := range ads {
			assert.Equal(t, adgen.DefaultCampaignTypes[i], ad.AdType)
			assert.Len(t, ad.Variations, 2)
		}

		stored, err := a.ListAds(ctx, b.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 4)
	})

	t.Run("explicit ad types with a shared voice", func(t *testing.T) {
		mock := &llm.Mock{}
		a := newTestApp(t, mock, nil)
		b, err := a.CreateBrief(ctx, nyuBrief())
		require.NoError(t, err)

		ads, err := a.GenerateCampaign(ctx, b.ID, CampaignRequest{
			AdTypes:       []string{"radio_ad", "blog_post"},
			UseBrandVoice: true,
		})
		require.NoError(t, err)
		require.Len(t, ads, 2)
		assert.Equal(t, adgen.RadioAd, ads[0].AdType)
		assert.Equal(t, adgen.BlogPost, ads[1].AdType)
		// one voice (2 calls) plus adaptation and generation per type
		assert.Equal(t, 6, mock.Calls())

		voices, err := a.Store.ListBrandVoices(ctx)
		require.NoError(t, err)
		require.Len(t, voices, 1)
		assert.Equal(t, int64(1), voices[0].Version)
	})

	t.Run("one failing type keeps the others", func(t *testing.T) {
		mock := &llm.Mock{}
		down := &llm.ServiceError{Provider: "test", StatusCode: 500, Err: errors.New("boom")}
		completer := llm.CompleterFunc(func(ctx context.Context, r llm.Request) (string, error) {
			if strings.Contains(r.System, "email marketer") {
				return "", down
			}
			return mock.Complete(ctx, r)
		})
		a := newTestApp(t, completer, nil)
		b, err := a.CreateBrief(ctx, nyuBrief())
		require.NoError(t, err)

		ads, err := a.GenerateCampaign(ctx, b.ID, CampaignRequest{
			AdTypes:    []string{"headline", "email_subject", "banner_copy"},
			Variations: 2,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, llm.ErrService)
		assert.Contains(t, err.Error(), "generate email_subject")

		require.Len(t, ads, 2)
		assert.Equal(t, adgen.Headline, ads[0].AdType)
		assert.Equal(t, adgen.BannerCopy, ads[1].AdType)

		stored, err := a.ListAds(ctx, b.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("invalid type fails before any call", func(t *testing.T) {
		mock := &llm.Mock{}
		a := newTestApp(t, mock, nil)
		_, err := a.GenerateCampaign(ctx, "any", CampaignRequest{AdTypes: []string{"headline", "skywriting"}})
		assert.ErrorIs(t, err, adgen.ErrInvalidArgument)
		assert.Zero(t, mock.Calls())
	})
}

func TestApp_ProcessFeedback(t *testing.T) {
	ctx := context.Background()
	mem := newFakeMemory()
	mock := &llm.Mock{}
	a := newTestApp(t, mock, mem)

	b, err := a.CreateBrief(ctx, nyuBrief())
	require.NoError(t, err)
	ad, err := a.GenerateAd(ctx, b.ID, GenerateRequest{AdType: "headline"})
	require.NoError(t, err)

	fb, err := a.ProcessFeedback(ctx, ad.ID, "Make it bolder", 6)
	require.NoError(t, err)
	assert.Equal(t, "Make it bolder", fb.Feedback)
	assert.Equal(t, 6, fb.Score)
	assert.Equal(t, b.ID, fb.BriefID)
	require.NotNil(t, fb.Result)
	assert.Equal(t, 6, fb.Result.Score)
	assert.Equal(t, []string{fb.ID}, mem.indexed[memory.KindFeedback])

	list, err := a.ListFeedback(ctx, ad.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fb.Result, list[0].Result)

	_, err = a.ProcessFeedback(ctx, ad.ID, "fine", 42)
	assert.ErrorIs(t, err, adgen.ErrInvalidArgument)

	_, err = a.ProcessFeedback(ctx, "missing", "fine", 5)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestApp_ReflectionBuildsStrategy(t *testing.T) {
	ctx := context.Background()
	mock := &llm.Mock{}
	a := newTestApp(t, mock, nil)

	b, err := a.CreateBrief(ctx, nyuBrief())
	require.NoError(t, err)
	ad, err := a.GenerateAd(ctx, b.ID, GenerateRequest{AdType: "headline", Variations: 2})
	require.NoError(t, err)

	s, err := a.SuggestImprovements(ctx, ad.ID)
	require.NoError(t, err)
	assert.False(t, s.BasedOnStrategy)

	_, err = a.ClientStrategy(ctx, b.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	feedbackRound := func(reflection, insights string) []string {
		return []string{"analysis", "{}", "recommendations", "[]", reflection, insights}
	}
	mock.Responses = append(
		feedbackRound("Shorter is better.", `{"key_insights":["shorter lines"],"pattern_recognition":["playful"]}`),
		feedbackRound("Purple works.", `{"key_insights":["shorter lines","more purple"],"strengths":["palette"]}`)...,
	)

	first, err := a.ProcessFeedback(ctx, ad.ID, "Too long", 5)
	require.NoError(t, err)
	_, err = a.ProcessFeedback(ctx, ad.ID, "Love the purple", 8)
	require.NoError(t, err)

	strategy, err := a.ClientStrategy(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, strategy.UpdateCount)
	assert.Equal(t, []string{"shorter lines", "more purple"}, strategy.KeyInsights)
	assert.Equal(t, []string{"palette"}, strategy.StrengthsToMaintain)
	assert.Equal(t, []string{"playful"}, strategy.ClientPreferences)

	reflections, err := a.Store.ListReflectionsForBrief(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, reflections, 2)
	assert.Equal(t, first.ID+"_reflection", reflections[0].ID)
	assert.Equal(t, "Shorter is better.", reflections[0].Reflection)

	s, err = a.SuggestImprovements(ctx, ad.ID)
	require.NoError(t, err)
	assert.True(t, s.BasedOnStrategy)
	last := mock.Requests[len(mock.Requests)-1].Prompt
	assert.Contains(t, last, "- more purple")
	assert.Contains(t, last, "Client Preferences:\n- playful")

	_, err = a.SuggestImprovements(ctx, "missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestApp_ReflectionFailureKeepsFeedback(t *testing.T) {
	ctx := context.Background()
	mock := &llm.Mock{}
	reflectionDown := &llm.ServiceError{Provider: "test", StatusCode: 500, Err: errors.New("boom")}
	completer := llm.CompleterFunc(func(ctx context.Context, r llm.Request) (string, error) {
		if r.System == feedback.ReflectionSystemPrompt {
			return "", reflectionDown
		}
		return mock.Complete(ctx, r)
	})
	a := newTestApp(t, completer, nil)

	b, err := a.CreateBrief(ctx, nyuBrief())
	require.NoError(t, err)
	ad, err := a.GenerateAd(ctx, b.ID, GenerateRequest{AdType: "headline"})
	require.NoError(t, err)

	fb, err := a.ProcessFeedback(ctx, ad.ID, "Make it bolder", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, fb.ID)

	reflections, err := a.Store.ListReflectionsForBrief(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, reflections)
}

func TestApp_AnalyzeAudience(t *testing.T) {
	ctx := context.Background()
	mock := &llm.Mock{}
	a := newTestApp(t, mock, nil)

	b, err := a.CreateBrief(ctx, nyuBrief())
	require.NoError(t, err)

	mock.Responses = []string{
		"Students and alumni.",
		`{"demographics":{"age_range":"18-24"}}`,
		`{"messaging_strategy":["Lead with pride"]}`,
	}
	got, err := a.AnalyzeAudience(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "NYU students, alumni, and fans", got.OriginalDescription)
	assert.Equal(t, "18-24", got.Profile.Demographics.AgeRange)
	assert.Equal(t, []string{"Lead with pride"}, got.Recommendations.Messaging)
	assert.Contains(t, mock.Requests[0].Prompt, "Target Audience: NYU students, alumni, and fans")

	_, err = a.AnalyzeAudience(ctx, "missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestApp_RegenerateAd(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*App, *llm.Mock, *Ad) {
		mock := &llm.Mock{}
		a := newTestApp(t, mock, nil)
		b, err := a.CreateBrief(ctx, nyuBrief())
		require.NoError(t, err)
		ad, err := a.GenerateAd(ctx, b.ID, GenerateRequest{AdType: "social_media_post", Variations: 2})
		require.NoError(t, err)
		return a, mock, ad
	}

	t.Run("with new feedback", func(t *testing.T) {
		a, mock, orig := setup(t)

		ad, err := a.RegenerateAd(ctx, orig.ID, RegenerateRequest{
			Feedback: "Too formal for students",
			Score:    4,
			Changes:  map[string]string{"tone": "more playful"},
		})
		require.NoError(t, err)

		assert.Equal(t, orig.ID, ad.ParentID)
		assert.Equal(t, orig.AdType, ad.AdType)
		assert.Len(t, ad.Variations, 2)

		last := mock.Requests[len(mock.Requests)-1].Prompt
		assert.Contains(t, last, "Too formal for students")
		assert.Contains(t, last, "Score: 4/10")
		assert.Contains(t, last, "- tone: more playful")

		fbs, err := a.ListFeedback(ctx, orig.ID)
		require.NoError(t, err)
		assert.Len(t, fbs, 1)

		revs, err := a.Revisions(ctx, orig.ID)
		require.NoError(t, err)
		require.Len(t, revs, 1)
		assert.Equal(t, ad.ID, revs[0].ID)
	})

	t.Run("uses stored feedback", func(t *testing.T) {
		a, mock, orig := setup(t)
		_, err := a.ProcessFeedback(ctx, orig.ID, "Needs more purple", 0)
		require.NoError(t, err)

		_, err = a.RegenerateAd(ctx, orig.ID, RegenerateRequest{})
		require.NoError(t, err)

		last := mock.Requests[len(mock.Requests)-1].Prompt
		assert.Contains(t, last, "Needs more purple")
		assert.NotContains(t, last, "Score:")
	})

	t.Run("without any feedback", func(t *testing.T) {
		a, mock, orig := setup(t)

		_, err := a.RegenerateAd(ctx, orig.ID, RegenerateRequest{Changes: map[string]string{"length": "shorter"}})
		require.NoError(t, err)

		last := mock.Requests[len(mock.Requests)-1].Prompt
		assert.NotContains(t, last, "Client Feedback")
		assert.Contains(t, last, "- length: shorter")
	})

	t.Run("missing ad", func(t *testing.T) {
		a, _, _ := setup(t)
		_, err := a.RegenerateAd(ctx, "missing", RegenerateRequest{})
		assert.ErrorIs(t, err, db.ErrNotFound)
	})
}

func TestApp_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("memory disabled", func(t *testing.T) {
		a := newTestApp(t, &llm.Mock{}, nil)
		_, err := a.Search(ctx, "purple", 5)
		assert.ErrorIs(t, err, ErrMemoryDisabled)
		_, err = a.SimilarCampaigns(ctx, "id", 5)
		assert.ErrorIs(t, err, ErrMemoryDisabled)
	})

	t.Run("similar campaigns drop the brief itself", func(t *testing.T) {
		mem := newFakeMemory()
		a := newTestApp(t, &llm.Mock{}, mem)
		b, err := a.CreateBrief(ctx, nyuBrief())
		require.NoError(t, err)

		mem.hits = []memory.Hit{
			{Kind: memory.KindBrief, RefID: b.ID, Similarity: 1},
			{Kind: memory.KindBrief, RefID: "other-1", Similarity: 0.8},
			{Kind: memory.KindBrief, RefID: "other-2", Similarity: 0.7},
		}
		hits, err := a.SimilarCampaigns(ctx, b.ID, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "other-1", hits[0].RefID)
	})

	t.Run("empty query", func(t *testing.T) {
		a := newTestApp(t, &llm.Mock{}, newFakeMemory())
		_, err := a.Search(ctx, " ", 5)
		assert.ErrorIs(t, err, adgen.ErrInvalidArgument)
	})
}

func TestApp_Stats(t *testing.T) {
	ctx := context.Background()
	mem := newFakeMemory()
	a := newTestApp(t, &llm.Mock{}, mem)

	b, err := a.CreateBrief(ctx, nyuBrief())
	require.NoError(t, err)
	_, err = a.GenerateAd(ctx, b.ID, GenerateRequest{AdType: "headline"})
	require.NoError(t, err)

	r, err := a.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.Briefs)
	assert.Equal(t, int64(1), r.Ads)
	assert.True(t, r.MemoryEnabled)
	assert.Equal(t, 2, r.MemoryRecords)

	require.NoError(t, a.Close())
	assert.True(t, mem.closed)
}
