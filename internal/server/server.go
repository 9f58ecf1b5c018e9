// Package server exposes the ad generation services over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sichenz/AdNova/internal/app"
)

// Server serves the JSON API.
type Server struct {
	app    *app.App
	health *Health
	addr   string
}

// New creates a Server for a.
func New(a *app.App, addr string) *Server {
	return &Server{
		app:    a,
		health: NewHealth(),
		addr:   addr,
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", s.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.stats)
		r.Get("/search", s.search)

		r.Route("/briefs", func(r chi.Router) {
			r.Get("/", s.listBriefs)
			r.Post("/", s.createBrief)
			r.Get("/{id}", s.getBrief)
			r.Get("/{id}/ads", s.listAds)
			r.Post("/{id}/ads", s.generateAd)
			r.Post("/{id}/campaign", s.generateCampaign)
			r.Get("/{id}/similar", s.similar)
			r.Post("/{id}/audience", s.analyzeAudience)
			r.Get("/{id}/strategy", s.strategy)
		})

		r.Route("/ads", func(r chi.Router) {
			r.Get("/{id}", s.getAd)
			r.Get("/{id}/feedback", s.listFeedback)
			r.Post("/{id}/feedback", s.processFeedback)
			r.Post("/{id}/regenerate", s.regenerate)
			r.Post("/{id}/suggestions", s.suggest)
		})
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
