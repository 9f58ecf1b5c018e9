// Package adgen turns campaign briefs into ad copy variations: it builds a
// type-specific prompt, calls the completion service once and splits the
// free-form answer into exactly the requested number of variations.
package adgen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sichenz/AdNova/internal/llm"
)

const (
	DefaultTemperature   = 0.9
	DefaultMaxTokens     = 1000
	DefaultMaxVariations = 5
	DefaultVariations    = 3
)

// Generator produces ad variations.
type Generator struct {
	completer     llm.Completer
	model         string
	temperature   float64
	maxTokens     int
	maxVariations int
}

// Config holds configuration for the Generator.
type Config struct {
	Completer     llm.Completer
	Model         string
	Temperature   float64
	MaxTokens     int
	MaxVariations int
}

// New creates a Generator. Zero values fall back to the defaults above.
func New(cfg Config) *Generator {
	g := &Generator{
		completer:     cfg.Completer,
		model:         cfg.Model,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
		maxVariations: cfg.MaxVariations,
	}
	if g.temperature == 0 {
		g.temperature = DefaultTemperature
	}
	if g.maxTokens <= 0 {
		g.maxTokens = DefaultMaxTokens
	}
	if g.maxVariations <= 0 {
		g.maxVariations = DefaultMaxVariations
	}
	return g
}

// MaxVariations is the upper bound applied to every request.
func (g *Generator) MaxVariations() int { return g.maxVariations }

// Generate creates req.Variations variations of req.AdType for the brief.
// The count is clamped to [1, MaxVariations]. Slots the model failed to
// produce hold FailedVariation.
func (g *Generator) Generate(ctx context.Context, brief CampaignBrief, req GenerationRequest) ([]string, error) {
	if !req.AdType.Valid() {
		return nil, unsupportedAdType(string(req.AdType))
	}
	if err := brief.Validate(); err != nil {
		return nil, err
	}

	n := g.clamp(req.Variations)
	prompt, err := BuildPrompt(req.AdType, brief, n, req.BrandVoice)
	if err != nil {
		return nil, err
	}

	slog.Info("generating ad",
		"ad_type", req.AdType,
		"product", brief.ProductName,
		"variations", n)

	raw, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", req.AdType, err)
	}

	return ParseVariations(raw, n), nil
}

// Regenerate asks for improved versions of orig, one per original
// variation, guided by optional feedback and requested changes.
func (g *Generator) Regenerate(ctx context.Context, orig OriginalAd, brief CampaignBrief, fb *FeedbackContext, changes map[string]string) ([]string, error) {
	if !orig.AdType.Valid() {
		return nil, unsupportedAdType(string(orig.AdType))
	}
	if len(orig.Variations) == 0 {
		return nil, &InvalidArgumentError{Arg: "original_ad", Reason: "has no variations"}
	}
	if err := brief.Validate(); err != nil {
		return nil, err
	}
	if fb != nil && (fb.Score < 0 || fb.Score > 10) {
		return nil, &InvalidArgumentError{Arg: "score", Value: fmt.Sprint(fb.Score), Reason: "must be between 1 and 10"}
	}

	prompt := BuildRegeneratePrompt(orig, brief, fb, changes)

	slog.Info("regenerating ad",
		"ad_type", orig.AdType,
		"product", brief.ProductName,
		"variations", len(orig.Variations),
		"has_feedback", fb != nil,
		"changes", len(changes))

	raw, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("regenerate %s: %w", orig.AdType, err)
	}

	return ParseVariations(raw, len(orig.Variations)), nil
}

func (g *Generator) complete(ctx context.Context, p Prompt) (string, error) {
	return g.completer.Complete(ctx, llm.Request{
		Model:       g.model,
		System:      p.System,
		Prompt:      p.User,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
}

func (g *Generator) clamp(n int) int {
	return max(1, min(n, g.maxVariations))
}
