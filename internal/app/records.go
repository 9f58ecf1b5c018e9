package app

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/db"
	"github.com/sichenz/AdNova/internal/feedback"
)

// Brief is a stored campaign brief.
type Brief struct {
	ID string `json:"id"`
	adgen.CampaignBrief
	CreatedAt time.Time `json:"created_at"`
}

// Ad is a stored generation result.
type Ad struct {
	ID          string           `json:"id"`
	BriefID     string           `json:"brief_id"`
	ParentID    string           `json:"parent_id,omitempty"`
	AdType      adgen.AdType     `json:"ad_type"`
	Variations  []string         `json:"variations"`
	BrandVoice  adgen.BrandVoice `json:"brand_voice,omitempty"`
	FailedCount int              `json:"failed_count"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Original returns the ad in the shape regeneration and feedback expect.
func (a *Ad) Original() adgen.OriginalAd {
	return adgen.OriginalAd{
		AdType:     a.AdType,
		Variations: a.Variations,
		BrandVoice: a.BrandVoice,
	}
}

// Feedback is stored client feedback with its analysis.
type Feedback struct {
	ID        string           `json:"id"`
	AdID      string           `json:"ad_id"`
	BriefID   string           `json:"brief_id"`
	Feedback  string           `json:"feedback"`
	Score     int              `json:"score,omitempty"`
	Result    *feedback.Result `json:"processed"`
	CreatedAt time.Time        `json:"created_at"`
}

// Strategy is what reflections on a brief's feedback have taught so far.
type Strategy struct {
	BriefID string `json:"brief_id"`
	feedback.Strategy
	UpdateCount int       `json:"update_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func briefFromRow(row db.Brief) (*Brief, error) {
	b := &Brief{
		ID: row.ID,
		CampaignBrief: adgen.CampaignBrief{
			ProductName:     row.ProductName,
			Description:     row.Description,
			TargetAudience:  row.TargetAudience,
			CampaignGoals:   row.CampaignGoals,
			Tone:            row.Tone,
			Platform:        row.Platform.String,
			AdditionalNotes: row.AdditionalNotes.String,
		},
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal([]byte(row.KeySellingPoints), &b.KeySellingPoints); err != nil {
		return nil, fmt.Errorf("decode selling points of brief %s: %w", row.ID, err)
	}
	return b, nil
}

func adFromRow(row db.Ad) (*Ad, error) {
	a := &Ad{
		ID:          row.ID,
		BriefID:     row.BriefID,
		ParentID:    row.ParentID.String,
		AdType:      adgen.AdType(row.AdType),
		FailedCount: int(row.FailedCount),
		CreatedAt:   row.CreatedAt,
	}
	if err := json.Unmarshal([]byte(row.Variations), &a.Variations); err != nil {
		return nil, fmt.Errorf("decode variations of ad %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.BrandVoice), &a.BrandVoice); err != nil {
		return nil, fmt.Errorf("decode brand voice of ad %s: %w", row.ID, err)
	}
	return a, nil
}

func feedbackFromRow(row db.Feedback) (*Feedback, error) {
	f := &Feedback{
		ID:        row.ID,
		AdID:      row.AdID,
		BriefID:   row.BriefID,
		Feedback:  row.Feedback,
		Score:     int(row.Score.Int64),
		CreatedAt: row.CreatedAt,
	}
	if row.Processed != "" {
		var res feedback.Result
		if err := json.Unmarshal([]byte(row.Processed), &res); err != nil {
			return nil, fmt.Errorf("decode analysis of feedback %s: %w", row.ID, err)
		}
		f.Result = &res
	}
	return f, nil
}

func strategyFromRow(row db.ClientStrategy) (*Strategy, error) {
	s := &Strategy{
		BriefID:     row.BriefID,
		UpdateCount: int(row.UpdateCount),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.Strategy), &s.Strategy); err != nil {
		return nil, fmt.Errorf("decode strategy of brief %s: %w", row.BriefID, err)
	}
	return s, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func failedCount(variations []string) int {
	n := 0
	for _, v := range variations {
		if v == adgen.FailedVariation {
			n++
		}
	}
	return n
}

func toJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
