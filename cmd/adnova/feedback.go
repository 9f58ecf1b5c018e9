package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/app"
	"github.com/sichenz/AdNova/internal/config"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <ad-id>",
	Short: "Record and analyse client feedback on an ad",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedback,
}

var feedbackListCmd = &cobra.Command{
	Use:   "list <ad-id>",
	Short: "List feedback recorded for an ad",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedbackList,
}

var (
	feedbackText  string
	feedbackScore int
)

func init() {
	feedbackCmd.Flags().StringVar(&feedbackText, "text", "", "feedback text")
	feedbackCmd.Flags().IntVar(&feedbackScore, "score", 0, "satisfaction score 1-10")
	_ = feedbackCmd.MarkFlagRequired("text")

	feedbackCmd.AddCommand(feedbackListCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).ValidateForGeneration)
	if err != nil {
		return err
	}
	defer a.Close()

	fb, err := a.ProcessFeedback(ctx, args[0], feedbackText, feedbackScore)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(fb)
	}
	printFeedback(fb)
	return nil
}

func runFeedbackList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).Validate)
	if err != nil {
		return err
	}
	defer a.Close()

	fbs, err := a.ListFeedback(ctx, args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(fbs)
	}
	for _, fb := range fbs {
		printFeedback(fb)
	}
	return nil
}

func printFeedback(fb *app.Feedback) {
	fmt.Printf("Feedback %s on ad %s\n", fb.ID, fb.AdID)
	fmt.Printf("  %q\n", fb.Feedback)
	if fb.Score > 0 {
		fmt.Printf("  Score: %d/10\n", fb.Score)
	}
	if fb.Result == nil {
		fmt.Println()
		return
	}

	an := fb.Result.Analysis
	fmt.Printf("  Sentiment: %s\n", an.Sentiment)
	printList("Key issues", an.KeyIssues)
	printList("Keep", an.ElementsToKeep)
	printList("Change", an.ElementsToChange)
	if len(fb.Result.Recommendations) > 0 {
		fmt.Println("  Recommendations:")
		for _, r := range fb.Result.Recommendations {
			fmt.Printf("    - %s\n", r.Recommendation)
			if r.Example != "" {
				fmt.Printf("      e.g. %s\n", r.Example)
			}
		}
	}
	fmt.Println()
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("  %s:\n    - %s\n", title, strings.Join(items, "\n    - "))
}
