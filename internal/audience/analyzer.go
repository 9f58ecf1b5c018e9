// Package audience turns a free-text target audience description into a
// structured profile and marketing recommendations.
package audience

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/llm"
)

const (
	analysisMaxTokens       = 1500
	structureTemp           = 0.1
	structureMaxTokens      = 1500
	recommendationMaxTokens = 1200
	defaultAnalyticalTemp   = 0.3
)

// Demographics are the who of an audience.
type Demographics struct {
	AgeRange           string `json:"age_range,omitempty"`
	GenderDistribution string `json:"gender_distribution,omitempty"`
	IncomeLevel        string `json:"income_level,omitempty"`
	EducationLevel     string `json:"education_level,omitempty"`
	Occupation         string `json:"occupation,omitempty"`
	Location           string `json:"location,omitempty"`
	FamilyStatus       string `json:"family_status,omitempty"`
}

type Psychographics struct {
	ValuesAndBeliefs    []string `json:"values_and_beliefs,omitempty"`
	InterestsAndHobbies []string `json:"interests_and_hobbies,omitempty"`
	Lifestyle           []string `json:"lifestyle,omitempty"`
	PersonalityTraits   []string `json:"personality_traits,omitempty"`
	AspirationsAndGoals []string `json:"aspirations_and_goals,omitempty"`
}

type Behavior struct {
	PurchasingBehavior []string `json:"purchasing_behavior,omitempty"`
	BrandPreferences   []string `json:"brand_preferences,omitempty"`
	MediaConsumption   []string `json:"media_consumption,omitempty"`
	OnlineBehavior     []string `json:"online_behavior,omitempty"`
	DecisionFactors    []string `json:"decision_factors,omitempty"`
}

type Needs struct {
	Challenges  []string `json:"challenges,omitempty"`
	UnmetNeeds  []string `json:"unmet_needs,omitempty"`
	Motivations []string `json:"motivations,omitempty"`
	Objections  []string `json:"objections,omitempty"`
}

type Communication struct {
	Tone           []string `json:"tone,omitempty"`
	MessageFraming []string `json:"message_framing,omitempty"`
	ContentTypes   []string `json:"content_types,omitempty"`
	Platforms      []string `json:"platforms,omitempty"`
}

// Segment is a distinct sub-group of the audience.
type Segment struct {
	Name            string   `json:"name"`
	Characteristics []string `json:"characteristics,omitempty"`
}

// Profile is the structured analysis of an audience.
type Profile struct {
	Demographics   Demographics   `json:"demographics"`
	Psychographics Psychographics `json:"psychographics"`
	Behavior       Behavior       `json:"behavioral_insights"`
	Needs          Needs          `json:"pain_points_and_needs"`
	Communication  Communication  `json:"communication_preferences"`
	Segments       []Segment      `json:"audience_segments"`

	// Set when the structuring answer could not be decoded; RawAnalysis
	// then holds the free-text analysis.
	ParsingError bool   `json:"parsing_error,omitempty"`
	RawAnalysis  string `json:"raw_analysis,omitempty"`
}

// Recommendations are marketing actions grouped by concern.
type Recommendations struct {
	Messaging    []string `json:"messaging_strategy"`
	Channels     []string `json:"channel_strategy"`
	Content      []string `json:"content_strategy"`
	Targeting    []string `json:"targeting_approach"`
	Creative     []string `json:"creative_direction"`
	ParsingError bool     `json:"parsing_error,omitempty"`
}

// Insights is the result of one analysis.
type Insights struct {
	Profile             Profile         `json:"analysis"`
	Recommendations     Recommendations `json:"recommendations"`
	OriginalDescription string          `json:"original_description"`
}

// DefaultProfile is returned when the structuring answer is not valid JSON.
func DefaultProfile(raw string) Profile {
	return Profile{
		Segments:     []Segment{},
		ParsingError: true,
		RawAnalysis:  raw,
	}
}

// DefaultRecommendations is returned when the recommendation answer is not
// valid JSON.
func DefaultRecommendations() Recommendations {
	return Recommendations{
		Messaging: []string{
			"Customize messaging to address the specific needs and pain points identified in the audience analysis.",
			"Use language and terminology that reflects the audience's level of understanding and familiarity with your product/service.",
			"Focus on the primary benefits that align with the audience's motivations.",
		},
		Channels: []string{
			"Prioritize channels based on the audience's media consumption habits.",
			"Consider a multi-channel approach to reach different segments of your audience.",
			"Allocate budget according to where your audience spends most of their time.",
		},
		Content: []string{
			"Create content that addresses the specific challenges identified in the analysis.",
			"Use formats that match the audience's preferred way of consuming information.",
			"Balance educational and promotional content based on the audience's buying stage.",
		},
		Targeting: []string{
			"Develop separate messaging for the identified sub-segments.",
			"Use the demographic and psychographic data for precise ad targeting.",
			"Test different approaches with smaller audience segments before scaling.",
		},
		Creative: []string{
			"Align visual elements with the audience's aesthetic preferences and values.",
			"Use a tone that matches the audience's communication style.",
			"Incorporate elements that reflect the audience's aspirations and goals.",
		},
		ParsingError: true,
	}
}

// Analyzer runs the audience round-trips.
type Analyzer struct {
	completer   llm.Completer
	model       string
	temperature float64
}

// Config holds configuration for the Analyzer.
type Config struct {
	Completer llm.Completer
	Model     string
	// Temperature for the analysis and recommendation calls; defaults to 0.3.
	Temperature float64
}

// New creates an Analyzer.
func New(cfg Config) *Analyzer {
	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultAnalyticalTemp
	}
	return &Analyzer{
		completer:   cfg.Completer,
		model:       cfg.Model,
		temperature: temp,
	}
}

// Analyze profiles the described audience and recommends how to reach it.
// Undecodable answers degrade to DefaultProfile and DefaultRecommendations;
// only completion failures are errors.
func (a *Analyzer) Analyze(ctx context.Context, description string) (*Insights, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &adgen.InvalidArgumentError{Arg: "target_audience", Reason: "must not be empty"}
	}

	slog.Info("analyzing audience", "chars", len(description))

	raw, err := a.completer.Complete(ctx, llm.Request{
		Model:       a.model,
		System:      AnalysisSystemPrompt,
		Prompt:      fmt.Sprintf(AnalysisPrompt, description),
		Temperature: a.temperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze audience: %w", err)
	}

	structured, err := a.completer.Complete(ctx, llm.Request{
		Model:       a.model,
		System:      ParserSystemPrompt,
		Prompt:      fmt.Sprintf(StructurePrompt, raw),
		Temperature: structureTemp,
		MaxTokens:   structureMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("structure audience analysis: %w", err)
	}
	profile, ok := llm.DecodeOrDefault(structured, DefaultProfile(raw))
	if !ok {
		slog.Warn("audience analysis not valid JSON, using defaults")
	}

	recs, err := a.recommend(ctx, profile)
	if err != nil {
		return nil, err
	}

	return &Insights{
		Profile:             profile,
		Recommendations:     recs,
		OriginalDescription: description,
	}, nil
}

func (a *Analyzer) recommend(ctx context.Context, p Profile) (Recommendations, error) {
	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return Recommendations{}, fmt.Errorf("encode audience profile: %w", err)
	}

	text, err := a.completer.Complete(ctx, llm.Request{
		Model:       a.model,
		System:      RecommendationSystemPrompt,
		Prompt:      fmt.Sprintf(RecommendationPrompt, profileJSON),
		Temperature: a.temperature,
		MaxTokens:   recommendationMaxTokens,
	})
	if err != nil {
		return Recommendations{}, fmt.Errorf("recommend for audience: %w", err)
	}

	recs, ok := llm.DecodeOrDefault(text, DefaultRecommendations())
	if !ok {
		slog.Warn("audience recommendations not valid JSON, using defaults")
	}
	return recs, nil
}
