package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/config"
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Manage campaign briefs",
}

var briefCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a campaign brief",
	Long: `Create a campaign brief from flags or from a YAML file.

Example YAML:

  product_name: NYU Merchandise
  description: Official NYU apparel and accessories
  target_audience: NYU students, alumni, and fans
  campaign_goals: Promote the spring purple collection
  tone: casual
  key_selling_points:
    - Official NYU gear
    - Sustainable materials
  platform: instagram`,
	RunE: runBriefCreate,
}

var briefShowCmd = &cobra.Command{
	Use:   "show <brief-id>",
	Short: "Show a brief and its ads",
	Args:  cobra.ExactArgs(1),
	RunE:  runBriefShow,
}

var briefListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent briefs",
	RunE:  runBriefList,
}

var (
	briefFile      string
	briefInput     adgen.CampaignBrief
	briefListLimit int
)

func init() {
	f := briefCreateCmd.Flags()
	f.StringVarP(&briefFile, "file", "f", "", "YAML file with the brief")
	f.StringVar(&briefInput.ProductName, "product", "", "product or service name")
	f.StringVar(&briefInput.Description, "description", "", "product description")
	f.StringVar(&briefInput.TargetAudience, "audience", "", "target audience")
	f.StringVar(&briefInput.CampaignGoals, "goals", "", "campaign goals")
	f.StringVar(&briefInput.Tone, "tone", "", "tone (default professional)")
	f.StringSliceVar(&briefInput.KeySellingPoints, "point", nil, "key selling point (repeatable)")
	f.StringVar(&briefInput.Platform, "platform", "", "target platform (instagram, facebook, twitter, linkedin, display)")
	f.StringVar(&briefInput.AdditionalNotes, "notes", "", "additional notes")

	briefListCmd.Flags().IntVar(&briefListLimit, "limit", 20, "maximum briefs to list")

	briefCmd.AddCommand(briefCreateCmd, briefShowCmd, briefListCmd)
	rootCmd.AddCommand(briefCmd)
}

// loadBriefFile reads a brief from YAML. Flags given on the command line
// override file values.
func loadBriefFile(path string, flags adgen.CampaignBrief) (adgen.CampaignBrief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return adgen.CampaignBrief{}, fmt.Errorf("read brief file: %w", err)
	}
	var b adgen.CampaignBrief
	if err := yaml.Unmarshal(data, &b); err != nil {
		return adgen.CampaignBrief{}, fmt.Errorf("parse brief file: %w", err)
	}

	override := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	override(&b.ProductName, flags.ProductName)
	override(&b.Description, flags.Description)
	override(&b.TargetAudience, flags.TargetAudience)
	override(&b.CampaignGoals, flags.CampaignGoals)
	override(&b.Tone, flags.Tone)
	override(&b.Platform, flags.Platform)
	override(&b.AdditionalNotes, flags.AdditionalNotes)
	if len(flags.KeySellingPoints) > 0 {
		b.KeySellingPoints = flags.KeySellingPoints
	}
	return b, nil
}

func runBriefCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	input := briefInput
	if briefFile != "" {
		var err error
		if input, err = loadBriefFile(briefFile, briefInput); err != nil {
			return err
		}
	}

	a, err := openApp(ctx, (*config.Config).Validate)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.CreateBrief(ctx, input)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(b)
	}
	printBrief(b)
	return nil
}

func runBriefShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).Validate)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.GetBrief(ctx, args[0])
	if err != nil {
		return err
	}
	ads, err := a.ListAds(ctx, b.ID)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{"brief": b, "ads": ads})
	}
	printBrief(b)
	fmt.Println()
	for _, ad := range ads {
		printAd(ad, b.Platform)
	}
	return nil
}

func runBriefList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).Validate)
	if err != nil {
		return err
	}
	defer a.Close()

	briefs, err := a.ListBriefs(ctx, briefListLimit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(briefs)
	}
	if len(briefs) == 0 {
		fmt.Println("No briefs yet. Create one with: adnova brief create")
		return nil
	}
	for _, b := range briefs {
		fmt.Printf("%s  %-30s  %s\n", b.ID, b.ProductName, b.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
