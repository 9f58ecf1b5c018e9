package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/app"
)

// Markdown renders an ad with its brief as a markdown document.
func Markdown(ad *app.Ad, brief *app.Brief) string {
	var sb strings.Builder

	title := ad.AdType.Label()
	if brief != nil {
		title = fmt.Sprintf("%s: %s", brief.ProductName, title)
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	fmt.Fprintf(&sb, "- **Ad ID:** `%s`\n", ad.ID)
	if ad.ParentID != "" {
		fmt.Fprintf(&sb, "- **Revision of:** `%s`\n", ad.ParentID)
	}
	fmt.Fprintf(&sb, "- **Created:** %s\n", ad.CreatedAt.Format("2006-01-02 15:04 MST"))
	if brief != nil {
		fmt.Fprintf(&sb, "- **Audience:** %s\n", brief.TargetAudience)
		fmt.Fprintf(&sb, "- **Goals:** %s\n", brief.CampaignGoals)
	}
	if ad.FailedCount > 0 {
		fmt.Fprintf(&sb, "- **Failed variations:** %d\n", ad.FailedCount)
	}

	for i, v := range ad.Variations {
		fmt.Fprintf(&sb, "\n## Variation %d\n\n", i+1)
		if v == adgen.FailedVariation {
			fmt.Fprintf(&sb, "> _%s_\n", v)
			continue
		}
		sb.WriteString(v)
		sb.WriteString("\n")
	}

	if tone := ad.BrandVoice["tone"]; tone != "" {
		fmt.Fprintf(&sb, "\n---\n\n_Brand voice: %s_\n", tone)
	}
	return sb.String()
}

// HTML converts markdown to HTML.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders markdown for a terminal of the given width.
func Terminal(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
