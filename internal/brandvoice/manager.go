// Package brandvoice generates, stores and adapts per-product brand voice
// guides that keep ad copy consistent across generations.
package brandvoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/db"
	"github.com/sichenz/AdNova/internal/llm"
)

const (
	guideMaxTokens     = 1500
	structureTemp      = 0.1
	structureMaxTokens = 1000
	contentTemp        = 0.4
	contentMaxTokens   = 800
	defaultTemperature = 0.3
)

// Tones lists the accepted brand tones. Anything else becomes
// adgen.DefaultTone.
var Tones = []string{
	"professional", "casual", "humorous", "inspirational",
	"urgent", "educational", "friendly", "luxurious",
}

// Guide is the structured voice guide. Category contents are free-form.
type Guide struct {
	VoiceCharacteristics map[string]any `json:"voice_characteristics"`
	ToneSpecification    map[string]any `json:"tone_specification"`
	LanguagePatterns     map[string]any `json:"language_patterns"`
	WritingStyle         map[string]any `json:"writing_style"`
	Examples             []any          `json:"examples"`
	ParsingError         bool           `json:"parsing_error,omitempty"`
}

// DefaultGuide is stored when the structuring answer is not valid JSON.
func DefaultGuide() Guide {
	return Guide{
		VoiceCharacteristics: map[string]any{
			"adjectives":    []any{"professional", "clear", "trustworthy"},
			"personality":   "Professional and trustworthy",
			"audience_feel": "Confident and informed",
		},
		ToneSpecification: map[string]any{
			"formality":       "Generally professional with appropriate casual elements",
			"emotional_range": "Moderate, emphasizing confidence and optimism",
			"authority":       "Knowledgeable but approachable",
		},
		LanguagePatterns: map[string]any{
			"sentence_structure": "Mix of medium and short sentences for readability",
			"vocabulary":         "Industry-appropriate but accessible",
			"emphasized_words":   []any{"quality", "results", "value"},
			"words_to_use":       []any{"discover", "enhance", "optimize"},
			"words_to_avoid":     []any{"cheap", "complicated", "difficult"},
		},
		WritingStyle: map[string]any{
			"literary_devices": "Occasional metaphors to explain complex ideas",
			"humor":            "Light, professional humor where appropriate",
			"audience_address": "Direct second-person (you/your)",
			"punctuation":      "Standard punctuation with occasional emphasis",
		},
		Examples: []any{
			"Example 1: Standard marketing message",
			"Example 2: Customer communication",
			"Example 3: Technical explanation",
		},
		ParsingError: true,
	}
}

// Voice is a stored brand voice.
type Voice struct {
	Key         string    `json:"key"`
	ProductName string    `json:"product_name"`
	Tone        string    `json:"tone"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Guide       Guide     `json:"guide"`
}

// BrandVoice flattens the guide into the attribute bag used by prompts.
func (v *Voice) BrandVoice() adgen.BrandVoice {
	bv := adgen.BrandVoice{"tone": v.Tone}

	if s := field(v.Guide.VoiceCharacteristics, "personality"); s != "" {
		bv["personality"] = s
	}
	if s := field(v.Guide.VoiceCharacteristics, "adjectives"); s != "" {
		bv["voice_adjectives"] = s
	}

	style := field(v.Guide.LanguagePatterns, "style")
	if style == "" {
		var parts []string
		for _, k := range []string{"sentence_structure", "vocabulary"} {
			if s := field(v.Guide.LanguagePatterns, k); s != "" {
				parts = append(parts, s)
			}
		}
		style = strings.Join(parts, "; ")
	}
	if style != "" {
		bv["language_style"] = style
	}
	if s := field(v.Guide.LanguagePatterns, "words_to_avoid"); s != "" {
		bv["words_to_avoid"] = s
	}
	return bv
}

// Store persists voices.
type Store interface {
	GetBrandVoice(ctx context.Context, key string) (db.BrandVoice, error)
	UpsertBrandVoice(ctx context.Context, arg db.UpsertBrandVoiceParams) (db.BrandVoice, error)
}

// Manager creates and retrieves brand voices.
type Manager struct {
	store       Store
	completer   llm.Completer
	model       string
	temperature float64
}

// Config holds configuration for the Manager.
type Config struct {
	Store       Store
	Completer   llm.Completer
	Model       string
	Temperature float64
}

// New creates a Manager.
func New(cfg Config) *Manager {
	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultTemperature
	}
	return &Manager{
		store:       cfg.Store,
		completer:   cfg.Completer,
		model:       cfg.Model,
		temperature: temp,
	}
}

// Request describes the product a voice is built for.
type Request struct {
	ProductName     string
	Description     string
	Tone            string
	TargetAudience  string
	ExistingContent string
}

// CreateOrGet returns the stored voice for the product, generating and
// storing one on first use.
func (m *Manager) CreateOrGet(ctx context.Context, req Request) (*Voice, error) {
	v, err := m.Get(ctx, req.ProductName)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}
	return m.Create(ctx, req)
}

// Get loads the stored voice for a product.
func (m *Manager) Get(ctx context.Context, productName string) (*Voice, error) {
	row, err := m.store.GetBrandVoice(ctx, SanitizeKey(productName))
	if err != nil {
		return nil, fmt.Errorf("get brand voice %q: %w", productName, err)
	}
	return fromRow(row)
}

// Create generates a new voice guide and stores it, replacing any previous
// guide for the product.
func (m *Manager) Create(ctx context.Context, req Request) (*Voice, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, &adgen.InvalidArgumentError{Arg: "product_name", Reason: "must not be empty"}
	}
	tone := NormalizeTone(req.Tone)

	slog.Info("creating brand voice", "product", req.ProductName, "tone", tone)

	raw, err := m.completer.Complete(ctx, llm.Request{
		Model:       m.model,
		System:      guideSystemPrompt,
		Prompt:      guidePrompt(req, tone),
		Temperature: m.temperature,
		MaxTokens:   guideMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("draft brand voice: %w", err)
	}

	structured, err := m.completer.Complete(ctx, llm.Request{
		Model:       m.model,
		System:      parserSystemPrompt,
		Prompt:      fmt.Sprintf(structureGuidePrompt, raw),
		Temperature: structureTemp,
		MaxTokens:   structureMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("structure brand voice: %w", err)
	}

	guide, ok := llm.DecodeOrDefault(structured, DefaultGuide())
	if !ok {
		slog.Warn("brand voice guide not valid JSON, using default", "product", req.ProductName)
	}

	return m.save(ctx, req.ProductName, tone, guide)
}

// Update applies updates to a stored voice and bumps its version. Keys
// name guide categories or "tone"; map values are merged into map
// categories, anything else replaces the category. Unknown keys are
// ignored.
func (m *Manager) Update(ctx context.Context, productName string, updates map[string]any) (*Voice, error) {
	v, err := m.Get(ctx, productName)
	if err != nil {
		return nil, err
	}

	if t, ok := updates["tone"].(string); ok {
		v.Tone = NormalizeTone(t)
	}

	data, err := json.Marshal(v.Guide)
	if err != nil {
		return nil, fmt.Errorf("encode guide: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode guide: %w", err)
	}

	for key, value := range updates {
		current, exists := doc[key]
		if !exists || key == "tone" {
			continue
		}
		patch, isMap := value.(map[string]any)
		base, baseIsMap := current.(map[string]any)
		if isMap && baseIsMap {
			for k, val := range patch {
				base[k] = val
			}
			continue
		}
		doc[key] = value
	}

	data, err = json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode updated guide: %w", err)
	}
	var guide Guide
	if err := json.Unmarshal(data, &guide); err != nil {
		return nil, &adgen.InvalidArgumentError{Arg: "updates", Reason: err.Error()}
	}

	return m.save(ctx, v.ProductName, v.Tone, guide)
}

// ForContent adapts the product's voice to one ad type. Without a stored
// voice it returns generic guidance and makes no completion call.
func (m *Manager) ForContent(ctx context.Context, productName string, adType adgen.AdType, audience string) (adgen.BrandVoice, error) {
	v, err := m.Get(ctx, productName)
	if errors.Is(err, db.ErrNotFound) {
		return adgen.BrandVoice{
			"tone":                  adgen.DefaultTone,
			"personality":           "Trustworthy, knowledgeable, and helpful",
			"language_style":        "Clear, concise, and straightforward",
			"content_type_specific": fmt.Sprintf("Standard %s best practices", adType.Label()),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	guideJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode voice: %w", err)
	}
	targeting := ""
	if audience != "" {
		targeting = " targeting " + audience
	}

	guidance, err := m.completer.Complete(ctx, llm.Request{
		Model:       m.model,
		System:      contentSystemPrompt,
		Prompt:      fmt.Sprintf(contentGuidelinesPrompt, guideJSON, adType.Label(), targeting),
		Temperature: contentTemp,
		MaxTokens:   contentMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("adapt brand voice: %w", err)
	}

	bv := v.BrandVoice()
	bv["content_type_specific"] = strings.TrimSpace(guidance)
	return bv, nil
}

func (m *Manager) save(ctx context.Context, productName, tone string, guide Guide) (*Voice, error) {
	data, err := json.Marshal(guide)
	if err != nil {
		return nil, fmt.Errorf("encode guide: %w", err)
	}
	row, err := m.store.UpsertBrandVoice(ctx, db.UpsertBrandVoiceParams{
		Key:         SanitizeKey(productName),
		ProductName: productName,
		Tone:        tone,
		Guide:       string(data),
	})
	if err != nil {
		return nil, fmt.Errorf("save brand voice: %w", err)
	}
	return fromRow(row)
}

func fromRow(row db.BrandVoice) (*Voice, error) {
	v := &Voice{
		Key:         row.Key,
		ProductName: row.ProductName,
		Tone:        row.Tone,
		Version:     row.Version,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.Guide), &v.Guide); err != nil {
		return nil, fmt.Errorf("decode stored guide for %s: %w", row.Key, err)
	}
	return v, nil
}

func guidePrompt(req Request, tone string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, guideIntro, req.ProductName, req.Description, tone)
	if req.TargetAudience != "" {
		fmt.Fprintf(&sb, "Target Audience: %s\n", req.TargetAudience)
	}
	if req.ExistingContent != "" {
		fmt.Fprintf(&sb, existingContentSection, req.ExistingContent)
	}
	sb.WriteString(guideComponents)
	return sb.String()
}

// NormalizeTone maps tone onto Tones, defaulting to adgen.DefaultTone.
func NormalizeTone(tone string) string {
	t := strings.ToLower(strings.TrimSpace(tone))
	if slices.Contains(Tones, t) {
		return t
	}
	return adgen.DefaultTone
}

// SanitizeKey derives the storage key for a product name.
func SanitizeKey(name string) string {
	var sb strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			continue
		}
		if r == ' ' {
			r = '_'
		}
		sb.WriteRune(r)
	}
	return strings.ToLower(sb.String())
}

// field renders a guide entry that may be a string or a list.
func field(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		var parts []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
