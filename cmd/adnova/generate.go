package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/app"
	"github.com/sichenz/AdNova/internal/config"
	"github.com/sichenz/AdNova/internal/export"
)

var generateCmd = &cobra.Command{
	Use:   "generate <brief-id>",
	Short: "Generate ad variations for a brief",
	Long:  `Generate ad copy variations of one type for a stored brief.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var (
	generateType     string
	generateCount    int
	generateVoice    bool
	generatePlatform string
	generateFit      bool
)

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateType, "type", "t", "social_media_post", "ad type ("+adTypeList()+")")
	f.IntVarP(&generateCount, "count", "n", 0, "number of variations (default 3)")
	f.BoolVar(&generateVoice, "voice", false, "apply the product's brand voice")
	f.StringVar(&generatePlatform, "platform", "", "check lengths against a platform limit (twitter, bluesky)")
	f.BoolVar(&generateFit, "fit", false, "truncate social posts that exceed the platform limit")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).ValidateForGeneration)
	if err != nil {
		return err
	}
	defer a.Close()

	ad, err := a.GenerateAd(ctx, args[0], app.GenerateRequest{
		AdType:        generateType,
		Variations:    generateCount,
		UseBrandVoice: generateVoice,
	})
	if err != nil {
		return err
	}

	platform := platformFor(a, ad.BriefID, generatePlatform)
	if generateFit {
		ad.Variations = export.FitToPlatform(ad.AdType, ad.Variations, platform)
	}
	if jsonOutput {
		return printJSON(ad)
	}
	printAd(ad, platform)
	return nil
}

// platformFor prefers an explicit flag and falls back to the brief's
// platform.
func platformFor(a *app.App, briefID, flag string) string {
	if flag != "" {
		return flag
	}
	b, err := a.GetBrief(context.Background(), briefID)
	if err != nil {
		return ""
	}
	return b.Platform
}
