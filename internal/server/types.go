package server

import (
	"github.com/sichenz/AdNova/internal/app"
	"github.com/sichenz/AdNova/internal/export"
)

type generateAdRequest struct {
	app.GenerateRequest
	// Platform selects the length limit reported in checks.
	Platform string `json:"platform,omitempty"`
}

type campaignRequest struct {
	app.CampaignRequest
	Platform string `json:"platform,omitempty"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
	Score    int    `json:"score,omitempty"`
}

type regenerateRequest struct {
	app.RegenerateRequest
	Platform string `json:"platform,omitempty"`
}

type adResponse struct {
	*app.Ad
	Checks []export.Check `json:"checks"`
}

func (s *Server) withChecks(ad *app.Ad, platform string) adResponse {
	limit, _ := export.PlatformLimit(platform)
	return adResponse{Ad: ad, Checks: export.CheckVariations(ad.Variations, limit)}
}
