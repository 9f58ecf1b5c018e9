package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/app"
	"github.com/sichenz/AdNova/internal/config"
)

var regenerateCmd = &cobra.Command{
	Use:   "regenerate <ad-id>",
	Short: "Regenerate an ad using feedback",
	Long: `Produce an improved revision of an ad. New feedback given with --feedback
is analysed first; otherwise the latest stored feedback on the ad is used.
Requested changes are passed as key=value pairs, e.g. --change length=shorter.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegenerate,
}

var (
	regenFeedback string
	regenScore    int
	regenChanges  map[string]string
)

func init() {
	f := regenerateCmd.Flags()
	f.StringVar(&regenFeedback, "feedback", "", "new feedback to apply")
	f.IntVar(&regenScore, "score", 0, "satisfaction score 1-10 for the new feedback")
	f.StringToStringVar(&regenChanges, "change", nil, "specific change as key=value (repeatable)")
	rootCmd.AddCommand(regenerateCmd)
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).ValidateForGeneration)
	if err != nil {
		return err
	}
	defer a.Close()

	ad, err := a.RegenerateAd(ctx, args[0], app.RegenerateRequest{
		Feedback: regenFeedback,
		Score:    regenScore,
		Changes:  regenChanges,
	})
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(ad)
	}
	printAd(ad, platformFor(a, ad.BriefID, ""))
	return nil
}
