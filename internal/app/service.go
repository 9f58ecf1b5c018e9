package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/audience"
	"github.com/sichenz/AdNova/internal/brandvoice"
	"github.com/sichenz/AdNova/internal/db"
	"github.com/sichenz/AdNova/internal/feedback"
	"github.com/sichenz/AdNova/internal/memory"
)

// GenerateRequest selects what GenerateAd produces.
type GenerateRequest struct {
	AdType     string `json:"ad_type"`
	Variations int    `json:"variations,omitempty"`
	// UseBrandVoice builds (or reuses) the product's brand voice and adapts
	// it to the ad type before generating.
	UseBrandVoice bool `json:"use_brand_voice,omitempty"`
}

// CampaignRequest generates several ad types for one brief.
type CampaignRequest struct {
	AdTypes       []string `json:"ad_types,omitempty"`
	Variations    int      `json:"variations,omitempty"`
	UseBrandVoice bool     `json:"use_brand_voice,omitempty"`
}

// RegenerateRequest guides a regeneration. With Feedback empty the most
// recent stored feedback on the ad is used, if any.
type RegenerateRequest struct {
	Feedback string            `json:"feedback,omitempty"`
	Score    int               `json:"score,omitempty"`
	Changes  map[string]string `json:"changes,omitempty"`
}

// CreateBrief validates and stores a brief.
func (a *App) CreateBrief(ctx context.Context, b adgen.CampaignBrief) (*Brief, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	points, err := toJSON(b.KeySellingPoints)
	if err != nil {
		return nil, fmt.Errorf("encode selling points: %w", err)
	}

	row, err := a.Store.CreateBrief(ctx, db.CreateBriefParams{
		ID:               uuid.NewString(),
		ProductName:      strings.TrimSpace(b.ProductName),
		Description:      strings.TrimSpace(b.Description),
		TargetAudience:   strings.TrimSpace(b.TargetAudience),
		CampaignGoals:    strings.TrimSpace(b.CampaignGoals),
		Tone:             b.ToneOrDefault(),
		KeySellingPoints: points,
		Platform:         nullString(strings.TrimSpace(b.Platform)),
		AdditionalNotes:  nullString(strings.TrimSpace(b.AdditionalNotes)),
	})
	if err != nil {
		return nil, fmt.Errorf("create brief: %w", err)
	}

	brief, err := briefFromRow(row)
	if err != nil {
		return nil, err
	}
	slog.Info("brief created", "brief_id", brief.ID, "product", brief.ProductName)

	if a.Memory != nil {
		if _, err := a.Memory.IndexBrief(ctx, brief.ID, brief.CampaignBrief); err != nil {
			slog.Warn("failed to index brief", "brief_id", brief.ID, "error", err)
		}
	}
	return brief, nil
}

// GetBrief loads a brief.
func (a *App) GetBrief(ctx context.Context, id string) (*Brief, error) {
	row, err := a.Store.GetBrief(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get brief %s: %w", id, err)
	}
	return briefFromRow(row)
}

// ListBriefs returns the newest briefs first.
func (a *App) ListBriefs(ctx context.Context, limit int) ([]*Brief, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.Store.ListBriefs(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list briefs: %w", err)
	}
	out := make([]*Brief, 0, len(rows))
	for _, row := range rows {
		b, err := briefFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// GenerateAd generates, stores and indexes one ad for a brief.
func (a *App) GenerateAd(ctx context.Context, briefID string, req GenerateRequest) (*Ad, error) {
	adType, err := adgen.ParseAdType(req.AdType)
	if err != nil {
		return nil, err
	}
	brief, err := a.GetBrief(ctx, briefID)
	if err != nil {
		return nil, err
	}

	var voice *brandvoice.Voice
	if req.UseBrandVoice {
		if voice, err = a.brandVoice(ctx, brief); err != nil {
			return nil, err
		}
	}
	return a.generate(ctx, brief, adType, variationsOrDefault(req.Variations), voice)
}

// GenerateCampaign generates every requested ad type concurrently. With no
// ad types it generates adgen.DefaultCampaignTypes. Ads are returned in
// request order. Every type is attempted even when one fails: the ads that
// succeeded stay stored and are returned together with the first error.
func (a *App) GenerateCampaign(ctx context.Context, briefID string, req CampaignRequest) ([]*Ad, error) {
	types := adgen.DefaultCampaignTypes
	if len(req.AdTypes) > 0 {
		types = make([]adgen.AdType, 0, len(req.AdTypes))
		for _, s := range req.AdTypes {
			t, err := adgen.ParseAdType(s)
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
	}

	brief, err := a.GetBrief(ctx, briefID)
	if err != nil {
		return nil, err
	}

	// The voice is created once up front so concurrent generations do not
	// race to create it.
	var voice *brandvoice.Voice
	if req.UseBrandVoice {
		if voice, err = a.brandVoice(ctx, brief); err != nil {
			return nil, err
		}
	}

	slog.Info("generating campaign", "brief_id", briefID, "ad_types", len(types))

	n := variationsOrDefault(req.Variations)
	ads := make([]*Ad, len(types))
	var g errgroup.Group
	for i, t := range types {
		g.Go(func() error {
			ad, err := a.generate(ctx, brief, t, n, voice)
			if err != nil {
				return fmt.Errorf("generate %s: %w", t, err)
			}
			ads[i] = ad
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		done := make([]*Ad, 0, len(ads))
		for _, ad := range ads {
			if ad != nil {
				done = append(done, ad)
			}
		}
		slog.Warn("campaign partially generated", "brief_id", briefID, "generated", len(done), "requested", len(types), "error", err)
		return done, err
	}
	return ads, nil
}

func (a *App) generate(ctx context.Context, brief *Brief, adType adgen.AdType, n int, voice *brandvoice.Voice) (*Ad, error) {
	var bv adgen.BrandVoice
	if voice != nil {
		var err error
		bv, err = a.Voices.ForContent(ctx, voice.ProductName, adType, brief.TargetAudience)
		if err != nil {
			return nil, err
		}
	}

	variations, err := a.Generator.Generate(ctx, brief.CampaignBrief, adgen.GenerationRequest{
		AdType:     adType,
		Variations: n,
		BrandVoice: bv,
	})
	if err != nil {
		return nil, err
	}
	return a.saveAd(ctx, brief, "", adType, variations, bv)
}

func (a *App) saveAd(ctx context.Context, brief *Brief, parentID string, adType adgen.AdType, variations []string, bv adgen.BrandVoice) (*Ad, error) {
	varsJSON, err := toJSON(variations)
	if err != nil {
		return nil, fmt.Errorf("encode variations: %w", err)
	}
	voiceJSON, err := toJSON(bv)
	if err != nil {
		return nil, fmt.Errorf("encode brand voice: %w", err)
	}
	failed := failedCount(variations)

	row, err := a.Store.CreateAd(ctx, db.CreateAdParams{
		ID:          uuid.NewString(),
		BriefID:     brief.ID,
		ParentID:    nullString(parentID),
		AdType:      string(adType),
		Variations:  varsJSON,
		BrandVoice:  voiceJSON,
		FailedCount: int64(failed),
	})
	if err != nil {
		return nil, fmt.Errorf("save ad: %w", err)
	}

	ad, err := adFromRow(row)
	if err != nil {
		return nil, err
	}
	if failed > 0 {
		slog.Warn("ad has failed variations", "ad_id", ad.ID, "ad_type", adType, "failed", failed)
	}

	if a.Memory != nil {
		if _, err := a.Memory.IndexAd(ctx, ad.ID, brief.ID, brief.ProductName, adType, variations); err != nil {
			slog.Warn("failed to index ad", "ad_id", ad.ID, "error", err)
		}
	}
	return ad, nil
}

// GetAd loads an ad.
func (a *App) GetAd(ctx context.Context, id string) (*Ad, error) {
	row, err := a.Store.GetAd(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ad %s: %w", id, err)
	}
	return adFromRow(row)
}

// ListAds returns a brief's ads, oldest first.
func (a *App) ListAds(ctx context.Context, briefID string) ([]*Ad, error) {
	rows, err := a.Store.ListAdsForBrief(ctx, briefID)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	return adsFromRows(rows)
}

// Revisions returns the ads regenerated from id.
func (a *App) Revisions(ctx context.Context, id string) ([]*Ad, error) {
	rows, err := a.Store.ListAdRevisions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	return adsFromRows(rows)
}

func adsFromRows(rows []db.Ad) ([]*Ad, error) {
	out := make([]*Ad, 0, len(rows))
	for _, row := range rows {
		ad, err := adFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, ad)
	}
	return out, nil
}

// ProcessFeedback analyses and stores client feedback on an ad, then
// reflects on it to update the brief's client strategy. A failed reflection
// is logged and does not fail the call.
func (a *App) ProcessFeedback(ctx context.Context, adID, text string, score int) (*Feedback, error) {
	ad, err := a.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	brief, err := a.GetBrief(ctx, ad.BriefID)
	if err != nil {
		return nil, err
	}

	res, err := a.Feedback.Process(ctx, ad.Original(), brief.CampaignBrief, text, score)
	if err != nil {
		return nil, err
	}
	processed, err := toJSON(res)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}

	scoreCol := sql.NullInt64{Int64: int64(score), Valid: score != 0}
	row, err := a.Store.CreateFeedback(ctx, db.CreateFeedbackParams{
		ID:        uuid.NewString(),
		AdID:      ad.ID,
		BriefID:   brief.ID,
		Feedback:  res.OriginalFeedback,
		Score:     scoreCol,
		Processed: processed,
	})
	if err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}

	fb, err := feedbackFromRow(row)
	if err != nil {
		return nil, err
	}
	if a.Memory != nil {
		if _, err := a.Memory.IndexFeedback(ctx, fb.ID, ad.ID, brief.ID, fb.Feedback); err != nil {
			slog.Warn("failed to index feedback", "feedback_id", fb.ID, "error", err)
		}
	}
	if err := a.reflect(ctx, ad, brief, fb); err != nil {
		slog.Warn("failed to reflect on feedback", "feedback_id", fb.ID, "error", err)
	}
	return fb, nil
}

// reflect stores a reflection on fb and folds its insights into the
// brief's strategy.
func (a *App) reflect(ctx context.Context, ad *Ad, brief *Brief, fb *Feedback) error {
	r, err := a.Feedback.Reflect(ctx, ad.Original(), brief.CampaignBrief, fb.Feedback, fb.Score)
	if err != nil {
		return err
	}
	insights := "{}"
	if r.Insights != nil {
		if insights, err = toJSON(r.Insights); err != nil {
			return fmt.Errorf("encode insights: %w", err)
		}
	}
	if _, err := a.Store.CreateReflection(ctx, db.CreateReflectionParams{
		ID:         fb.ID + "_reflection",
		FeedbackID: fb.ID,
		AdID:       ad.ID,
		BriefID:    brief.ID,
		Reflection: r.Text,
		Insights:   insights,
	}); err != nil {
		return fmt.Errorf("save reflection: %w", err)
	}

	if r.Insights == nil || r.Insights.Empty() {
		return nil
	}

	strategy, err := a.ClientStrategy(ctx, brief.ID)
	switch {
	case errors.Is(err, db.ErrNotFound):
		strategy = &Strategy{BriefID: brief.ID}
	case err != nil:
		return err
	}
	strategy.Merge(*r.Insights)

	doc, err := toJSON(strategy.Strategy)
	if err != nil {
		return fmt.Errorf("encode strategy: %w", err)
	}
	row, err := a.Store.UpsertClientStrategy(ctx, db.UpsertClientStrategyParams{
		BriefID:  brief.ID,
		Strategy: doc,
	})
	if err != nil {
		return fmt.Errorf("save strategy: %w", err)
	}
	slog.Info("client strategy updated", "brief_id", brief.ID, "updates", row.UpdateCount)
	return nil
}

// ClientStrategy returns the strategy learned for a brief.
func (a *App) ClientStrategy(ctx context.Context, briefID string) (*Strategy, error) {
	row, err := a.Store.GetClientStrategy(ctx, briefID)
	if err != nil {
		return nil, fmt.Errorf("get strategy %s: %w", briefID, err)
	}
	return strategyFromRow(row)
}

// SuggestImprovements proposes changes to an ad, drawing on the brief's
// strategy once one exists.
func (a *App) SuggestImprovements(ctx context.Context, adID string) (*feedback.Suggestions, error) {
	ad, err := a.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}

	var learned *feedback.Strategy
	s, err := a.ClientStrategy(ctx, ad.BriefID)
	switch {
	case errors.Is(err, db.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		learned = &s.Strategy
	}
	return a.Feedback.Suggest(ctx, ad.Original(), learned)
}

// AnalyzeAudience profiles a brief's target audience.
func (a *App) AnalyzeAudience(ctx context.Context, briefID string) (*audience.Insights, error) {
	brief, err := a.GetBrief(ctx, briefID)
	if err != nil {
		return nil, err
	}
	return a.Audience.Analyze(ctx, brief.TargetAudience)
}

// ListFeedback returns the feedback recorded for an ad.
func (a *App) ListFeedback(ctx context.Context, adID string) ([]*Feedback, error) {
	rows, err := a.Store.ListFeedbackForAd(ctx, adID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	out := make([]*Feedback, 0, len(rows))
	for _, row := range rows {
		f, err := feedbackFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// RegenerateAd produces improved variations of an ad and stores them as a
// new ad whose parent is the original. New feedback in req is processed
// and stored first.
func (a *App) RegenerateAd(ctx context.Context, adID string, req RegenerateRequest) (*Ad, error) {
	orig, err := a.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	brief, err := a.GetBrief(ctx, orig.BriefID)
	if err != nil {
		return nil, err
	}

	var fb *Feedback
	if strings.TrimSpace(req.Feedback) != "" {
		fb, err = a.ProcessFeedback(ctx, adID, req.Feedback, req.Score)
		if err != nil {
			return nil, err
		}
	} else {
		row, err := a.Store.LatestFeedbackForAd(ctx, adID)
		switch {
		case errors.Is(err, db.ErrNotFound):
		case err != nil:
			return nil, fmt.Errorf("load feedback: %w", err)
		default:
			if fb, err = feedbackFromRow(row); err != nil {
				return nil, err
			}
		}
	}

	var fc *adgen.FeedbackContext
	if fb != nil {
		fc = &adgen.FeedbackContext{Feedback: fb.Feedback, Score: fb.Score}
		if fb.Result != nil {
			fc.Processed = fb.Result
		}
	}

	variations, err := a.Generator.Regenerate(ctx, orig.Original(), brief.CampaignBrief, fc, req.Changes)
	if err != nil {
		return nil, err
	}
	return a.saveAd(ctx, brief, orig.ID, orig.AdType, variations, orig.BrandVoice)
}

// Search queries semantic memory across briefs, ads and feedback.
func (a *App) Search(ctx context.Context, query string, k int) ([]memory.Hit, error) {
	if a.Memory == nil {
		return nil, ErrMemoryDisabled
	}
	if strings.TrimSpace(query) == "" {
		return nil, &adgen.InvalidArgumentError{Arg: "q", Reason: "must not be empty"}
	}
	return a.Memory.Search(ctx, query, topK(k))
}

// SimilarCampaigns finds past briefs resembling the given brief.
func (a *App) SimilarCampaigns(ctx context.Context, briefID string, k int) ([]memory.Hit, error) {
	if a.Memory == nil {
		return nil, ErrMemoryDisabled
	}
	brief, err := a.GetBrief(ctx, briefID)
	if err != nil {
		return nil, err
	}

	// Ask for one extra so the brief itself can be dropped.
	hits, err := a.Memory.SimilarCampaigns(ctx, memory.BriefText(brief.CampaignBrief), topK(k)+1)
	if err != nil {
		return nil, err
	}
	out := hits[:0]
	for _, h := range hits {
		if h.RefID != brief.ID {
			out = append(out, h)
		}
	}
	return out[:min(len(out), topK(k))], nil
}

// Report is the combined store and memory statistics.
type Report struct {
	db.Stats
	MemoryEnabled bool `json:"memory_enabled"`
	MemoryRecords int  `json:"memory_records"`
}

// Stats reports row counts and memory size.
func (a *App) Stats(ctx context.Context) (*Report, error) {
	st, err := a.Store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	r := &Report{Stats: st}
	if a.Memory != nil {
		r.MemoryEnabled = true
		r.MemoryRecords = a.Memory.Count()
	}
	return r, nil
}

func (a *App) brandVoice(ctx context.Context, brief *Brief) (*brandvoice.Voice, error) {
	return a.Voices.CreateOrGet(ctx, brandvoice.Request{
		ProductName:    brief.ProductName,
		Description:    brief.Description,
		Tone:           brief.Tone,
		TargetAudience: brief.TargetAudience,
	})
}

func variationsOrDefault(n int) int {
	if n == 0 {
		return adgen.DefaultVariations
	}
	return n
}

func topK(k int) int {
	if k <= 0 {
		return 5
	}
	return k
}
