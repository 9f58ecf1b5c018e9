// Package feedback turns free-text client feedback on an ad into a
// structured analysis and a list of improvement recommendations.
package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/llm"
)

const (
	analysisMaxTokens       = 1200
	recommendationMaxTokens = 1200
	recommendationTemp      = 0.4
	structureTemp           = 0.1
	structureMaxTokens      = 800
	defaultAnalyticalTemp   = 0.3
	sentimentNeutral        = "Neutral"

	minScore = 1
	maxScore = 10
)

// Analysis is the structured reading of one piece of feedback.
type Analysis struct {
	KeyIssues             []string `json:"key_issues"`
	PositiveAspects       []string `json:"positive_aspects"`
	ElementsToChange      []string `json:"elements_to_change"`
	ElementsToKeep        []string `json:"elements_to_keep"`
	SuggestedImprovements []string `json:"suggested_improvements"`
	Sentiment             string   `json:"sentiment"`

	// Set when the model's answer could not be decoded and the fields
	// above hold placeholders.
	ParsingError bool   `json:"parsing_error,omitempty"`
	RawAnalysis  string `json:"raw_analysis,omitempty"`
}

// Recommendation is one actionable improvement with an illustration.
type Recommendation struct {
	Recommendation string `json:"recommendation"`
	Example        string `json:"example"`
}

// Result is the processed feedback stored alongside the raw text.
type Result struct {
	Analysis         Analysis         `json:"analysis"`
	Recommendations  []Recommendation `json:"improvement_recommendations"`
	OriginalFeedback string           `json:"original_feedback"`
	Score            int              `json:"score,omitempty"`
}

// DefaultAnalysis is returned when the structuring answer is not valid JSON.
func DefaultAnalysis(raw string) Analysis {
	return Analysis{
		KeyIssues:             []string{"Could not parse key issues from feedback"},
		PositiveAspects:       []string{"Could not parse positive aspects from feedback"},
		ElementsToChange:      []string{"Review ad for potential improvements based on feedback"},
		ElementsToKeep:        []string{"Preserve core messaging while making requested changes"},
		SuggestedImprovements: []string{"Consider overall tone and clarity of messaging"},
		Sentiment:             sentimentNeutral,
		ParsingError:          true,
		RawAnalysis:           raw,
	}
}

// DefaultRecommendations is returned when the recommendation answer is not
// a valid JSON array.
func DefaultRecommendations() []Recommendation {
	return []Recommendation{
		{
			Recommendation: "Review and adjust the overall tone to better match the target audience preferences",
			Example:        "Example of tone adjustment",
		},
		{
			Recommendation: "Strengthen the call-to-action to be more specific and compelling",
			Example:        "Instead of 'Learn More', use 'Discover How [Product] Can [Specific Benefit] Today'",
		},
		{
			Recommendation: "Focus messaging more directly on the primary benefit for the customer",
			Example:        "Emphasize the main value proposition in the headline",
		},
		{
			Recommendation: "Use more concrete, specific language rather than general claims",
			Example:        "Instead of 'Improves efficiency', use 'Reduces processing time by 35%'",
		},
		{
			Recommendation: "Adjust the messaging to better address customer pain points",
			Example:        "Directly mention how the product solves a specific problem",
		},
	}
}

// Processor runs the feedback round-trips.
type Processor struct {
	completer   llm.Completer
	model       string
	temperature float64
}

// Config holds configuration for the Processor.
type Config struct {
	Completer llm.Completer
	Model     string
	// Temperature for the analysis call; defaults to 0.3.
	Temperature float64
}

// New creates a Processor.
func New(cfg Config) *Processor {
	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultAnalyticalTemp
	}
	return &Processor{
		completer:   cfg.Completer,
		model:       cfg.Model,
		temperature: temp,
	}
}

// Process analyses feedback on ad. score is optional (0) or 1..10.
// Only completion failures are returned as errors; undecodable answers
// degrade to DefaultAnalysis and DefaultRecommendations.
func (p *Processor) Process(ctx context.Context, ad adgen.OriginalAd, brief adgen.CampaignBrief, text string, score int) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &adgen.InvalidArgumentError{Arg: "feedback", Reason: "must not be empty"}
	}
	if score != 0 && (score < minScore || score > maxScore) {
		return nil, &adgen.InvalidArgumentError{Arg: "score", Value: fmt.Sprint(score), Reason: "must be between 1 and 10"}
	}

	slog.Info("processing feedback",
		"ad_type", ad.AdType,
		"product", brief.ProductName,
		"score", score)

	analysis, err := p.analyze(ctx, ad, brief, text, score)
	if err != nil {
		return nil, err
	}

	recs, err := p.recommend(ctx, ad, brief, analysis)
	if err != nil {
		return nil, err
	}

	return &Result{
		Analysis:         analysis,
		Recommendations:  recs,
		OriginalFeedback: text,
		Score:            score,
	}, nil
}

func (p *Processor) analyze(ctx context.Context, ad adgen.OriginalAd, brief adgen.CampaignBrief, text string, score int) (Analysis, error) {
	scoreLine := ""
	if score != 0 {
		scoreLine = fmt.Sprintf("Score: %d/10", score)
	}

	prompt := fmt.Sprintf(AnalysisPrompt,
		brief.ProductName,
		brief.Description,
		brief.TargetAudience,
		brief.CampaignGoals,
		ad.AdType,
		numbered(ad.Variations),
		text,
		scoreLine,
	)

	raw, err := p.completer.Complete(ctx, llm.Request{
		Model:       p.model,
		System:      AnalysisSystemPrompt,
		Prompt:      prompt,
		Temperature: p.temperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze feedback: %w", err)
	}

	structured, err := p.completer.Complete(ctx, llm.Request{
		Model:       p.model,
		System:      ParserSystemPrompt,
		Prompt:      fmt.Sprintf(StructureAnalysisPrompt, raw),
		Temperature: structureTemp,
		MaxTokens:   structureMaxTokens,
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("structure analysis: %w", err)
	}

	analysis, ok := llm.DecodeOrDefault(structured, DefaultAnalysis(raw))
	if !ok {
		slog.Warn("feedback analysis not valid JSON, using defaults", "ad_type", ad.AdType)
	}
	return analysis, nil
}

func (p *Processor) recommend(ctx context.Context, ad adgen.OriginalAd, brief adgen.CampaignBrief, a Analysis) ([]Recommendation, error) {
	prompt := fmt.Sprintf(RecommendationPrompt,
		ad.AdType,
		brief.ProductName,
		brief.TargetAudience,
		bullets(a.KeyIssues),
		bullets(a.ElementsToChange),
	)

	raw, err := p.completer.Complete(ctx, llm.Request{
		Model:       p.model,
		System:      RecommendationSystemPrompt,
		Prompt:      prompt,
		Temperature: recommendationTemp,
		MaxTokens:   recommendationMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("recommend improvements: %w", err)
	}

	structured, err := p.completer.Complete(ctx, llm.Request{
		Model:       p.model,
		System:      ParserSystemPrompt,
		Prompt:      fmt.Sprintf(StructureRecommendationsPrompt, raw),
		Temperature: structureTemp,
		MaxTokens:   structureMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("structure recommendations: %w", err)
	}

	recs, ok := llm.DecodeOrDefault(structured, DefaultRecommendations())
	if !ok {
		slog.Warn("recommendations not valid JSON, using defaults", "ad_type", ad.AdType)
	}
	return recs, nil
}

func numbered(vs []string) string {
	lines := make([]string, len(vs))
	for i, v := range vs {
		lines[i] = fmt.Sprintf("Variation %d: %s", i+1, v)
	}
	return strings.Join(lines, "\n")
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = "- " + s
	}
	return strings.Join(lines, "\n")
}
