package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/app"
	"github.com/sichenz/AdNova/internal/config"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign <brief-id>",
	Short: "Generate a full campaign for a brief",
	Long: `Generate several ad types for one brief concurrently. Without --types
a social post, headlines, email subject lines and banner copy are produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runCampaign,
}

var (
	campaignTypes []string
	campaignCount int
	campaignVoice bool
)

func init() {
	f := campaignCmd.Flags()
	f.StringSliceVar(&campaignTypes, "types", nil, "ad types to generate (comma separated)")
	f.IntVarP(&campaignCount, "count", "n", 0, "variations per ad type (default 3)")
	f.BoolVar(&campaignVoice, "voice", false, "apply the product's brand voice")
	rootCmd.AddCommand(campaignCmd)
}

func runCampaign(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).ValidateForGeneration)
	if err != nil {
		return err
	}
	defer a.Close()

	ads, err := a.GenerateCampaign(ctx, args[0], app.CampaignRequest{
		AdTypes:       campaignTypes,
		Variations:    campaignCount,
		UseBrandVoice: campaignVoice,
	})
	if len(ads) == 0 {
		return err
	}
	if jsonOutput {
		if perr := printJSON(ads); perr != nil {
			return perr
		}
		return err
	}

	platform := platformFor(a, args[0], "")
	fmt.Printf("Generated %d ads for brief %s\n\n", len(ads), args[0])
	for _, ad := range ads {
		printAd(ad, platform)
	}
	// Ads that were generated before a failure are already stored.
	return err
}
