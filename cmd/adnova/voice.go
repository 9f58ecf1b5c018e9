package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/adgen"
	"github.com/sichenz/AdNova/internal/brandvoice"
	"github.com/sichenz/AdNova/internal/config"
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Manage product brand voices",
}

var voiceCreateCmd = &cobra.Command{
	Use:   "create <product>",
	Short: "Generate (or regenerate) a brand voice guide",
	Args:  cobra.ExactArgs(1),
	RunE:  runVoiceCreate,
}

var voiceShowCmd = &cobra.Command{
	Use:   "show <product>",
	Short: "Show a product's brand voice",
	Args:  cobra.ExactArgs(1),
	RunE:  runVoiceShow,
}

var voiceUpdateCmd = &cobra.Command{
	Use:   "update <product>",
	Short: "Update a brand voice guide",
	Long: `Update a stored brand voice. --tone changes the tone; --data takes a JSON
object keyed by guide category, e.g.

  --data '{"writing_style": {"humor": "none"}}'`,
	Args: cobra.ExactArgs(1),
	RunE: runVoiceUpdate,
}

var (
	voiceReq    brandvoice.Request
	voiceTone   string
	voiceData   string
	voiceAdType string
)

func init() {
	f := voiceCreateCmd.Flags()
	f.StringVar(&voiceReq.Description, "description", "", "product description")
	f.StringVar(&voiceReq.Tone, "tone", "", "brand tone")
	f.StringVar(&voiceReq.TargetAudience, "audience", "", "target audience")
	f.StringVar(&voiceReq.ExistingContent, "content", "", "existing brand content to learn from")

	voiceShowCmd.Flags().StringVar(&voiceAdType, "for", "", "adapt the voice to an ad type")

	voiceUpdateCmd.Flags().StringVar(&voiceTone, "tone", "", "new tone")
	voiceUpdateCmd.Flags().StringVar(&voiceData, "data", "", "JSON object of category updates")

	voiceCmd.AddCommand(voiceCreateCmd, voiceShowCmd, voiceUpdateCmd)
	rootCmd.AddCommand(voiceCmd)
}

func runVoiceCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).ValidateForGeneration)
	if err != nil {
		return err
	}
	defer a.Close()

	req := voiceReq
	req.ProductName = args[0]
	if req.ExistingContent != "" {
		if data, err := os.ReadFile(req.ExistingContent); err == nil {
			req.ExistingContent = string(data)
		}
	}

	v, err := a.Voices.Create(ctx, req)
	if err != nil {
		return err
	}
	return printVoice(v)
}

func runVoiceShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	validate := (*config.Config).Validate
	if voiceAdType != "" {
		validate = (*config.Config).ValidateForGeneration
	}
	a, err := openApp(ctx, validate)
	if err != nil {
		return err
	}
	defer a.Close()

	if voiceAdType != "" {
		adType, err := adgen.ParseAdType(voiceAdType)
		if err != nil {
			return err
		}
		bv, err := a.Voices.ForContent(ctx, args[0], adType, "")
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(bv)
		}
		keys := make([]string, 0, len(bv))
		for k := range bv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %s\n", k, bv[k])
		}
		return nil
	}

	v, err := a.Voices.Get(ctx, args[0])
	if err != nil {
		return err
	}
	return printVoice(v)
}

func runVoiceUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	updates := map[string]any{}
	if voiceData != "" {
		if err := json.Unmarshal([]byte(voiceData), &updates); err != nil {
			return fmt.Errorf("parse --data: %w", err)
		}
	}
	if voiceTone != "" {
		updates["tone"] = voiceTone
	}
	if len(updates) == 0 {
		return fmt.Errorf("nothing to update: pass --tone or --data")
	}

	a, err := openApp(ctx, (*config.Config).Validate)
	if err != nil {
		return err
	}
	defer a.Close()

	v, err := a.Voices.Update(ctx, args[0], updates)
	if err != nil {
		return err
	}
	return printVoice(v)
}

func printVoice(v *brandvoice.Voice) error {
	if jsonOutput {
		return printJSON(v)
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("Brand voice for %s (v%d)", v.ProductName, v.Version)))
	fmt.Printf("  Tone: %s\n", v.Tone)
	if v.Guide.ParsingError {
		fmt.Println("  (default guide, the generated one could not be parsed)")
	}
	bv := v.BrandVoice()
	for _, k := range []string{"personality", "voice_adjectives", "language_style", "words_to_avoid"} {
		if s := bv[k]; s != "" {
			fmt.Printf("  %s: %s\n", k, s)
		}
	}
	fmt.Printf("  Updated: %s\n", v.UpdatedAt.Format("2006-01-02 15:04"))
	return nil
}
