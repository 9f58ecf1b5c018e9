package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/export"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Store.PingContext(r.Context()); err != nil {
		s.health.SetUnhealthy("database", err)
	} else {
		s.health.SetHealthy("database", "ok")
	}
	if s.app.Memory != nil {
		s.health.SetHealthy("memory", strconv.Itoa(s.app.Memory.Count())+" records")
	}

	status := http.StatusOK
	if !s.health.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"healthy":    status == http.StatusOK,
		"components": s.health.Statuses(),
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	report, err := s.app.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	hits, err := s.app.Search(r.Context(), r.URL.Query().Get("q"), intParam(r, "k"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hits)
}

func (s *Server) listBriefs(w http.ResponseWriter, r *http.Request) {
	briefs, err := s.app.ListBriefs(r.Context(), intParam(r, "limit"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, briefs)
}

func (s *Server) createBrief(w http.ResponseWriter, r *http.Request) {
	var req adgen.CampaignBrief
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	brief, err := s.app.CreateBrief(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, brief)
}

func (s *Server) getBrief(w http.ResponseWriter, r *http.Request) {
	brief, err := s.app.GetBrief(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, brief)
}

func (s *Server) listAds(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.app.GetBrief(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	ads, err := s.app.ListAds(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

func (s *Server) generateAd(w http.ResponseWriter, r *http.Request) {
	var req generateAdRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ad, err := s.app.GenerateAd(r.Context(), chi.URLParam(r, "id"), req.GenerateRequest)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.health.SetHealthy("llm", "ok")
	writeJSON(w, http.StatusCreated, s.withChecks(ad, req.Platform))
}

func (s *Server) generateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ads, err := s.app.GenerateCampaign(r.Context(), chi.URLParam(r, "id"), req.CampaignRequest)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.health.SetHealthy("llm", "ok")
	out := make([]adResponse, len(ads))
	for i, ad := range ads {
		out[i] = s.withChecks(ad, req.Platform)
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) similar(w http.ResponseWriter, r *http.Request) {
	hits, err := s.app.SimilarCampaigns(r.Context(), chi.URLParam(r, "id"), intParam(r, "k"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hits)
}

// getAd returns JSON by default; ?format=markdown or ?format=html renders
// the ad as a document instead.
func (s *Server) getAd(w http.ResponseWriter, r *http.Request) {
	ad, err := s.app.GetAd(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		writeJSON(w, http.StatusOK, s.withChecks(ad, r.URL.Query().Get("platform")))
		return
	}

	brief, err := s.app.GetBrief(r.Context(), ad.BriefID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	md := export.Markdown(ad, brief)

	switch format {
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(md))
	case "html":
		html, err := export.HTML(md)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	default:
		writeError(w, http.StatusBadRequest, "unsupported format "+strconv.Quote(format))
	}
}

func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request) {
	fbs, err := s.app.ListFeedback(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fbs)
}

func (s *Server) processFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	fb, err := s.app.ProcessFeedback(r.Context(), chi.URLParam(r, "id"), req.Feedback, req.Score)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.health.SetHealthy("llm", "ok")
	writeJSON(w, http.StatusCreated, fb)
}

func (s *Server) regenerate(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	ad, err := s.app.RegenerateAd(r.Context(), chi.URLParam(r, "id"), req.RegenerateRequest)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.health.SetHealthy("llm", "ok")
	writeJSON(w, http.StatusCreated, s.withChecks(ad, req.Platform))
}

func (s *Server) analyzeAudience(w http.ResponseWriter, r *http.Request) {
	insights, err := s.app.AnalyzeAudience(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.health.SetHealthy("llm", "ok")
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) strategy(w http.ResponseWriter, r *http.Request) {
	st, err := s.app.ClientStrategy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request) {
	sg, err := s.app.SuggestImprovements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.health.SetHealthy("llm", "ok")
	writeJSON(w, http.StatusOK, sg)
}

func intParam(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}
