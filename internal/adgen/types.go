package adgen

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultTone is used when a brief names no tone.
	DefaultTone = "professional"

	notSpecified = "Not specified"
)

// CampaignBrief is the structured campaign description that seeds every
// prompt.
type CampaignBrief struct {
	ProductName      string   `json:"product_name" yaml:"product_name" validate:"required"`
	Description      string   `json:"description" yaml:"description" validate:"required"`
	TargetAudience   string   `json:"target_audience" yaml:"target_audience" validate:"required"`
	CampaignGoals    string   `json:"campaign_goals" yaml:"campaign_goals" validate:"required"`
	Tone             string   `json:"tone,omitempty" yaml:"tone,omitempty"`
	KeySellingPoints []string `json:"key_selling_points,omitempty" yaml:"key_selling_points,omitempty" validate:"dive,required"`
	Platform         string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	AdditionalNotes  string   `json:"additional_notes,omitempty" yaml:"additional_notes,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every required field holds non-blank text.
func (b CampaignBrief) Validate() error {
	trimmed := b.normalized()
	if err := validate.Struct(trimmed); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &InvalidArgumentError{
				Arg:    "brief." + verrs[0].Field(),
				Reason: "must not be empty",
			}
		}
		return &InvalidArgumentError{Arg: "brief", Reason: err.Error()}
	}
	return nil
}

// ToneOrDefault returns the brief's tone, or DefaultTone when unset.
func (b CampaignBrief) ToneOrDefault() string {
	if t := strings.TrimSpace(b.Tone); t != "" {
		return t
	}
	return DefaultTone
}

func (b CampaignBrief) normalized() CampaignBrief {
	out := b
	out.ProductName = strings.TrimSpace(b.ProductName)
	out.Description = strings.TrimSpace(b.Description)
	out.TargetAudience = strings.TrimSpace(b.TargetAudience)
	out.CampaignGoals = strings.TrimSpace(b.CampaignGoals)
	if len(b.KeySellingPoints) > 0 {
		out.KeySellingPoints = make([]string, len(b.KeySellingPoints))
		for i, p := range b.KeySellingPoints {
			out.KeySellingPoints[i] = strings.TrimSpace(p)
		}
	}
	return out
}

// BrandVoice is a free-form bag of voice attributes merged into prompts.
// Well-known keys are "tone", "personality" and "language_style"; any
// other key is carried along without validation.
type BrandVoice map[string]string

// Get returns the value for key, or "Not specified" when absent.
func (v BrandVoice) Get(key string) string {
	if s := strings.TrimSpace(v[key]); s != "" {
		return s
	}
	return notSpecified
}

// GenerationRequest selects what to generate for a brief.
type GenerationRequest struct {
	AdType     AdType
	Variations int
	BrandVoice BrandVoice
}

// FeedbackContext is the client's reaction to an earlier ad. Every field
// is optional.
type FeedbackContext struct {
	Feedback string
	// Score is 1..10; zero means no score was given.
	Score     int
	Processed any
}

// OriginalAd is the ad being regenerated.
type OriginalAd struct {
	AdType     AdType
	Variations []string
	BrandVoice BrandVoice
}
