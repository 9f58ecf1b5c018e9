package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/app"
	"github.com/sichenz/AdNova/internal/config"
	"github.com/sichenz/AdNova/internal/export"
)

var jsonOutput bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// openApp loads configuration, checks it with validate and wires the app.
func openApp(ctx context.Context, validate func(*config.Config) error) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return openConfigured(ctx, cfg)
}

func openConfigured(ctx context.Context, cfg *config.Config) (*app.App, error) {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize app: %w", err)
	}
	return a, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAd(ad *app.Ad, platform string) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("=== %s ===", ad.AdType.Label())) + " " + mutedStyle.Render(ad.ID))
	if ad.ParentID != "" {
		fmt.Println(mutedStyle.Render("Revision of: " + ad.ParentID))
	}

	limit, hasLimit := export.PlatformLimit(platform)
	checks := export.CheckVariations(ad.Variations, limit)
	for i, v := range ad.Variations {
		fmt.Printf("\n[%d] %s\n", i+1, v)
		c := checks[i]
		switch {
		case c.Failed:
			fmt.Println(failStyle.Render("    (failed, regenerate to retry)"))
		case hasLimit && !c.Fits:
			fmt.Println(warnStyle.Render(fmt.Sprintf("    (%d chars, over the %s limit of %d)", c.Chars, platform, limit)))
		}
	}
	fmt.Println()
}

func printBrief(b *app.Brief) {
	fmt.Println(titleStyle.Render("Brief " + b.ID))
	fmt.Printf("  Product:  %s\n", b.ProductName)
	fmt.Printf("  Audience: %s\n", b.TargetAudience)
	fmt.Printf("  Goals:    %s\n", b.CampaignGoals)
	fmt.Printf("  Tone:     %s\n", b.ToneOrDefault())
	if len(b.KeySellingPoints) > 0 {
		fmt.Printf("  Points:   %s\n", strings.Join(b.KeySellingPoints, "; "))
	}
	if b.Platform != "" {
		fmt.Printf("  Platform: %s\n", b.Platform)
	}
	fmt.Printf("  Created:  %s\n", b.CreatedAt.Format("2006-01-02 15:04"))
}

func adTypeList() string {
	types := adgen.AdTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
