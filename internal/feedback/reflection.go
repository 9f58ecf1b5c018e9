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
	reflectionMaxTokens = 1200
	suggestionTemp      = 0.5
	suggestionMaxTokens = 1200
)

// Insights is the structured reading of a reflection.
type Insights struct {
	KeyInsights         []string `json:"key_insights"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	ActionItems         []string `json:"action_items"`
	PatternRecognition  []string `json:"pattern_recognition"`
}

// Empty reports whether the insights carry nothing to learn from.
func (i Insights) Empty() bool {
	return len(i.KeyInsights)+len(i.Strengths)+len(i.AreasForImprovement)+
		len(i.ActionItems)+len(i.PatternRecognition) == 0
}

// Reflection is the model's take on what one piece of feedback teaches
// about the client. Insights is nil when the structuring answer was not
// valid JSON.
type Reflection struct {
	Text         string    `json:"reflection"`
	Insights     *Insights `json:"structured_insights"`
	ParsingError bool      `json:"parsing_error,omitempty"`
}

// Strategy accumulates reflection insights for one client brief.
type Strategy struct {
	KeyInsights         []string `json:"key_insights"`
	StrengthsToMaintain []string `json:"strengths_to_maintain"`
	AreasToImprove      []string `json:"areas_to_improve"`
	ClientPreferences   []string `json:"client_preferences"`
	EffectiveApproaches []string `json:"effective_approaches"`
}

// Merge appends ins to the strategy. Repeated entries are dropped; the
// first occurrence keeps its place.
func (s *Strategy) Merge(ins Insights) {
	s.KeyInsights = appendUnique(s.KeyInsights, ins.KeyInsights)
	s.StrengthsToMaintain = appendUnique(s.StrengthsToMaintain, ins.Strengths)
	s.AreasToImprove = appendUnique(s.AreasToImprove, ins.AreasForImprovement)
	s.ClientPreferences = appendUnique(s.ClientPreferences, ins.PatternRecognition)
	s.EffectiveApproaches = appendUnique(s.EffectiveApproaches, ins.ActionItems)
}

func appendUnique(dst, src []string) []string {
	seen := make(map[string]bool, len(dst)+len(src))
	out := make([]string, 0, len(dst)+len(src))
	for _, list := range [][]string{dst, src} {
		for _, s := range list {
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Suggestions are improvement ideas for an ad. BasedOnStrategy is false
// when no strategy existed and generic best practice was used instead.
type Suggestions struct {
	Text            string `json:"suggestions"`
	BasedOnStrategy bool   `json:"based_on_strategy"`
}

// Reflect asks what the feedback teaches for future ads for this client.
// Like Process, only completion failures are errors.
func (p *Processor) Reflect(ctx context.Context, ad adgen.OriginalAd, brief adgen.CampaignBrief, text string, score int) (*Reflection, error) {
	scoreLine := ""
	if score != 0 {
		scoreLine = fmt.Sprintf("Score: %d/10", score)
	}

	raw, err := p.completer.Complete(ctx, llm.Request{
		Model:  p.model,
		System: ReflectionSystemPrompt,
		Prompt: fmt.Sprintf(ReflectionPrompt,
			brief.ProductName,
			brief.Description,
			brief.TargetAudience,
			brief.CampaignGoals,
			ad.AdType,
			numbered(ad.Variations),
			strings.TrimSpace(text),
			scoreLine,
		),
		Temperature: p.temperature,
		MaxTokens:   reflectionMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("reflect on feedback: %w", err)
	}

	structured, err := p.completer.Complete(ctx, llm.Request{
		Model:       p.model,
		System:      ParserSystemPrompt,
		Prompt:      fmt.Sprintf(StructureReflectionPrompt, raw),
		Temperature: structureTemp,
		MaxTokens:   structureMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("structure reflection: %w", err)
	}

	r := &Reflection{Text: raw}
	ins, ok := llm.DecodeOrDefault(structured, Insights{})
	if ok {
		r.Insights = &ins
	} else {
		r.ParsingError = true
		slog.Warn("reflection not valid JSON", "ad_type", ad.AdType)
	}
	return r, nil
}

// Suggest proposes improvements to ad, using what strategy has learned
// about the client when strategy is not nil.
func (p *Processor) Suggest(ctx context.Context, ad adgen.OriginalAd, strategy *Strategy) (*Suggestions, error) {
	prompt := fmt.Sprintf(GenericSuggestionPrompt, ad.AdType, numbered(ad.Variations))
	if strategy != nil {
		prompt = fmt.Sprintf(StrategySuggestionPrompt,
			ad.AdType,
			numbered(ad.Variations),
			bullets(strategy.KeyInsights),
			bullets(strategy.StrengthsToMaintain),
			bullets(strategy.AreasToImprove),
			bullets(strategy.ClientPreferences),
		)
	}

	text, err := p.completer.Complete(ctx, llm.Request{
		Model:       p.model,
		System:      SuggestionSystemPrompt,
		Prompt:      prompt,
		Temperature: suggestionTemp,
		MaxTokens:   suggestionMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest improvements: %w", err)
	}
	return &Suggestions{Text: strings.TrimSpace(text), BasedOnStrategy: strategy != nil}, nil
}
