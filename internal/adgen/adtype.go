package adgen

import "strings"

// AdType identifies one of the supported content formats.
type AdType string

const (
	SocialMediaPost    AdType = "social_media_post"
	Headline           AdType = "headline"
	EmailSubject       AdType = "email_subject"
	BannerCopy         AdType = "banner_copy"
	ProductDescription AdType = "product_description"
	LandingPage        AdType = "landing_page"
	VideoScript        AdType = "video_script"
	RadioAd            AdType = "radio_ad"
	PressRelease       AdType = "press_release"
	BlogPost           AdType = "blog_post"
)

var adTypes = []AdType{
	SocialMediaPost,
	Headline,
	EmailSubject,
	BannerCopy,
	ProductDescription,
	LandingPage,
	VideoScript,
	RadioAd,
	PressRelease,
	BlogPost,
}

// DefaultCampaignTypes are generated when a campaign names no ad types.
var DefaultCampaignTypes = []AdType{SocialMediaPost, Headline, EmailSubject, BannerCopy}

// AdTypes returns every supported ad type in display order.
func AdTypes() []AdType {
	out := make([]AdType, len(adTypes))
	copy(out, adTypes)
	return out
}

// ParseAdType validates s against the supported set.
func ParseAdType(s string) (AdType, error) {
	t := AdType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", unsupportedAdType(s)
	}
	return t, nil
}

// Valid reports whether t is a supported ad type.
func (t AdType) Valid() bool {
	for _, known := range adTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label is the human form used inside prompts, e.g. "banner ad copy".
func (t AdType) Label() string {
	switch t {
	case SocialMediaPost:
		return "social media post"
	case EmailSubject:
		return "email subject line"
	case BannerCopy:
		return "banner ad copy"
	}
	return strings.ReplaceAll(string(t), "_", " ")
}

func (t AdType) String() string { return string(t) }

func adTypeNames() []string {
	names := make([]string, len(adTypes))
	for i, t := range adTypes {
		names[i] = string(t)
	}
	return names
}
