package adgen

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Prompt is one system/user pair sent to the completion service.
type Prompt struct {
	System string
	User   string
}

const closingInstruction = "Present each variation clearly numbered."

const regenerateSystemPrompt = "You are an expert marketing copywriter specializing in creating compelling ad content."

// BuildPrompt assembles the generation prompt for one ad type.
func BuildPrompt(t AdType, b CampaignBrief, n int, voice BrandVoice) (Prompt, error) {
	switch t {
	case SocialMediaPost:
		return socialMediaPrompt(b, n, voice), nil
	case Headline:
		return headlinePrompt(b, n, voice), nil
	case EmailSubject:
		return emailSubjectPrompt(b, n, voice), nil
	case BannerCopy:
		return bannerCopyPrompt(b, n, voice), nil
	case ProductDescription:
		return productDescriptionPrompt(b, n, voice), nil
	case LandingPage, VideoScript, RadioAd, PressRelease, BlogPost:
		return genericPrompt(t.Label(), b, n, voice), nil
	}
	return Prompt{}, unsupportedAdType(string(t))
}

func socialMediaPrompt(b CampaignBrief, n int, voice BrandVoice) Prompt {
	var platform string
	p := strings.ToLower(b.Platform)
	switch {
	case strings.Contains(p, "instagram"):
		platform = `Platform: Instagram
- Create engaging, visually descriptive content
- Include 5-7 relevant hashtags
- Keep the post concise but impactful
- Consider how the post would complement a visual`
	case strings.Contains(p, "facebook"):
		platform = `Platform: Facebook
- Create conversational and engaging content
- Can be slightly longer than Instagram posts
- Include a clear call-to-action
- Consider how to encourage comments and shares`
	case strings.Contains(p, "twitter") || hasWord(p, "x"):
		platform = `Platform: Twitter/X
- Keep posts under 280 characters
- Make it punchy and direct
- Include 1-2 relevant hashtags
- Consider adding a question or call-to-action to encourage engagement`
	case strings.Contains(p, "linkedin"):
		platform = `Platform: LinkedIn
- Maintain a professional tone
- Focus on industry relevance and business value
- Can be longer and more detailed than other platforms
- Include professional insights or statistics when relevant`
	default:
		platform = `Platform: General social media
- Create versatile content that works across platforms
- Include a compelling hook and clear call-to-action
- Keep the messaging concise and impactful
- Consider how to make the content shareable`
	}

	return Prompt{
		System: "You are an expert social media copywriter who specializes in creating engaging, platform-optimized content.",
		User: assemble(n, "social media post", b, voice, platform, `Each post should:
1. Grab attention with a compelling hook
2. Highlight a key benefit or feature
3. Include a clear call-to-action
4. Match the specified tone and brand voice
5. Resonate with the target audience`),
	}
}

func headlinePrompt(b CampaignBrief, n int, voice BrandVoice) Prompt {
	var kind string
	goals := strings.ToLower(b.CampaignGoals)
	switch {
	case strings.Contains(goals, "awareness"):
		kind = `Headline Type: Awareness/Brand Building
- Focus on conveying the brand's value proposition
- Create intrigue or emotional connection
- Emphasize what makes the brand unique`
	case strings.Contains(goals, "conversion"):
		kind = `Headline Type: Conversion/Direct Response
- Create a sense of urgency or necessity
- Clearly state the value proposition
- Use action-oriented language`
	case strings.Contains(goals, "promotional"):
		kind = `Headline Type: Promotional/Sales
- Highlight offers, discounts, or limited-time opportunities
- Use numbers when relevant (e.g., "50% Off")
- Create a sense of urgency or exclusivity`
	}

	return Prompt{
		System: "You are an expert copywriter who specializes in creating compelling, attention-grabbing headlines.",
		User: assemble(n, "headline", b, voice, kind, `Each headline should:
1. Be concise and impactful (ideally under 10 words)
2. Capture the primary benefit or unique selling proposition
3. Use powerful, evocative language
4. Match the specified tone and brand voice
5. Resonate with the target audience`),
	}
}

func emailSubjectPrompt(b CampaignBrief, n int, voice BrandVoice) Prompt {
	var kind string
	goals := strings.ToLower(b.CampaignGoals)
	switch {
	case strings.Contains(goals, "newsletter"):
		kind = `Email Type: Newsletter
- Focus on providing value and information
- Create interest without seeming too promotional
- Emphasize relevance to the recipient`
	case strings.Contains(goals, "promotional"):
		kind = `Email Type: Promotional
- Highlight offers, discounts, or limited-time opportunities
- Create a sense of urgency or exclusivity
- Make the value proposition immediately clear`
	case strings.Contains(goals, "announcement"):
		kind = `Email Type: Announcement
- Create excitement or anticipation
- Clearly indicate that something new or important is happening
- Use language that suggests insider information or exclusive news`
	}

	return Prompt{
		System: "You are an expert email marketer who specializes in creating high-performing subject lines with strong open rates.",
		User: assemble(n, "email subject line", b, voice, kind, `Each subject line should:
1. Be concise (under 50 characters is ideal)
2. Create immediate interest or curiosity
3. Avoid spam trigger words
4. Match the specified tone and brand voice
5. Provide a compelling reason to open the email`),
	}
}

func bannerCopyPrompt(b CampaignBrief, n int, voice BrandVoice) Prompt {
	var kind string
	switch {
	case strings.Contains(strings.ToLower(b.Platform), "display"):
		kind = `Banner Type: Display Ad
- Create immediate visual impact with words
- Focus on a single clear message
- Use concise, powerful language`
	case strings.Contains(strings.ToLower(b.CampaignGoals), "retargeting"):
		kind = `Banner Type: Retargeting Ad
- Create a sense of familiarity
- Address potential hesitations
- Include a clear incentive to return/convert`
	default:
		kind = `Banner Type: General
- Create immediate impact with minimal words
- Focus on a single clear message
- Include a compelling call-to-action`
	}

	return Prompt{
		System: "You are an expert digital advertising copywriter who specializes in creating high-converting banner ad copy.",
		User: assemble(n, "banner ad copy", b, voice, kind, `For each variation, provide:
1. Headline (5-7 words maximum)
2. Subheading/supporting text (optional, 5-10 words)
3. Call-to-action button text (2-4 words)

Each banner variation should:
- Create immediate visual impact through words
- Focus on a single key benefit or message
- Use powerful, evocative language
- Include a compelling call-to-action`),
	}
}

func productDescriptionPrompt(b CampaignBrief, n int, voice BrandVoice) Prompt {
	return Prompt{
		System: "You are an expert product copywriter who specializes in creating compelling, benefit-focused product descriptions.",
		User: assemble(n, "product description", b, voice, "", `Each product description should:
1. Open with an engaging hook
2. Highlight the key benefits and features
3. Address the target audience's needs and pain points
4. Include sensory and descriptive language
5. End with a subtle call-to-action
6. Be approximately 150-200 words`),
	}
}

func genericPrompt(label string, b CampaignBrief, n int, voice BrandVoice) Prompt {
	return Prompt{
		System: fmt.Sprintf("You are an expert copywriter who specializes in creating compelling %s content.", label),
		User: assemble(n, label, b, voice, "", fmt.Sprintf(`Each %s should:
1. Engage the target audience effectively
2. Highlight the key benefits and features
3. Address the target audience's needs and pain points
4. Match the specified tone and brand voice
5. Include a clear call-to-action`, label)),
	}
}

// assemble lays out the sections shared by every generation prompt.
func assemble(n int, label string, b CampaignBrief, voice BrandVoice, instructions, criteria string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create %d compelling %s variations for the following product/service:\n\n", n, label)
	writeBrief(&sb, b)

	if len(voice) > 0 {
		sb.WriteString("\n")
		writeBrandVoice(&sb, voice, b)
	}
	if instructions != "" {
		sb.WriteString("\n")
		sb.WriteString(instructions)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(criteria)
	sb.WriteString("\n\n")
	sb.WriteString(closingInstruction)
	return sb.String()
}

func writeBrief(sb *strings.Builder, b CampaignBrief) {
	fmt.Fprintf(sb, "Product/Service: %s\n", b.ProductName)
	fmt.Fprintf(sb, "Description: %s\n", b.Description)
	fmt.Fprintf(sb, "Target Audience: %s\n", b.TargetAudience)
	fmt.Fprintf(sb, "Campaign Goals: %s\n", b.CampaignGoals)
	fmt.Fprintf(sb, "Tone: %s\n", b.ToneOrDefault())
	fmt.Fprintf(sb, "Key Selling Points: %s\n", strings.Join(b.KeySellingPoints, ", "))
	if notes := strings.TrimSpace(b.AdditionalNotes); notes != "" {
		fmt.Fprintf(sb, "Additional Notes: %s\n", notes)
	}
}

func writeBrandVoice(sb *strings.Builder, voice BrandVoice, b CampaignBrief) {
	tone := voice.Get("tone")
	if tone == notSpecified {
		tone = b.ToneOrDefault()
	}
	sb.WriteString("Brand Voice:\n")
	fmt.Fprintf(sb, "Tone: %s\n", tone)
	fmt.Fprintf(sb, "Personality: %s\n", voice.Get("personality"))
	fmt.Fprintf(sb, "Language Style: %s\n", voice.Get("language_style"))

	var extra []string
	for k := range voice {
		switch k {
		case "tone", "personality", "language_style":
		default:
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		fmt.Fprintf(sb, "%s: %s\n", humanize(k), voice.Get(k))
	}
}

// BuildRegeneratePrompt assembles the prompt that asks for improved
// versions of an existing ad.
func BuildRegeneratePrompt(orig OriginalAd, b CampaignBrief, fb *FeedbackContext, changes map[string]string) Prompt {
	label := orig.AdType.Label()

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert marketing copywriter. Your task is to improve the following %s based on the client feedback and/or requested changes.\n\n", label)

	sb.WriteString("ORIGINAL CONTENT:\n")
	for i, v := range orig.Variations {
		fmt.Fprintf(&sb, "Variation %d: %s\n", i+1, v)
	}

	sb.WriteString("\nCAMPAIGN INFORMATION:\n")
	writeBrief(&sb, b)

	if len(orig.BrandVoice) > 0 {
		sb.WriteString("\n")
		writeBrandVoice(&sb, orig.BrandVoice, b)
	}

	if fb != nil {
		sb.WriteString("\nClient Feedback:\n")
		if s := strings.TrimSpace(fb.Feedback); s != "" {
			sb.WriteString(s)
			sb.WriteString("\n")
		}
		if fb.Score > 0 {
			fmt.Fprintf(&sb, "Score: %d/10\n", fb.Score)
		}
		sb.WriteString("\nProcessed Feedback Insights:\n")
		sb.WriteString(processedJSON(fb.Processed))
		sb.WriteString("\n")
	}

	if len(changes) > 0 {
		sb.WriteString("\nRequested Changes:\n")
		keys := make([]string, 0, len(changes))
		for k := range changes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "- %s: %s\n", k, changes[k])
		}
	}

	fmt.Fprintf(&sb, "\nCreate %d improved variations of the %s that address the feedback and requested changes while maintaining the core message and brand voice.\n\n", len(orig.Variations), label)
	sb.WriteString(`For each variation:
1. Keep what worked well in the original
2. Address the issues raised in the feedback or implement the requested changes
3. Ensure the tone and messaging align with the campaign goals and target audience

`)
	sb.WriteString(closingInstruction)

	return Prompt{System: regenerateSystemPrompt, User: sb.String()}
}

func processedJSON(v any) string {
	if v == nil {
		return "{}"
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func hasWord(s, word string) bool {
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if f == word {
			return true
		}
	}
	return false
}

func humanize(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
