package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/config"
)

var strategyCmd = &cobra.Command{
	Use:   "strategy <brief-id>",
	Short: "Show what feedback on a brief's ads has taught so far",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrategy,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <ad-id>",
	Short: "Suggest improvements to an ad from the client strategy",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(strategyCmd, suggestCmd)
}

func runStrategy(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).Validate)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.ClientStrategy(ctx, args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(s)
	}

	fmt.Printf("Strategy for brief %s (%d updates, last %s)\n",
		s.BriefID, s.UpdateCount, s.UpdatedAt.Format("2006-01-02 15:04"))
	printList("Key insights", s.KeyInsights)
	printList("Strengths to maintain", s.StrengthsToMaintain)
	printList("Areas to improve", s.AreasToImprove)
	printList("Client preferences", s.ClientPreferences)
	printList("Effective approaches", s.EffectiveApproaches)
	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).ValidateForGeneration)
	if err != nil {
		return err
	}
	defer a.Close()

	sg, err := a.SuggestImprovements(ctx, args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(sg)
	}
	if !sg.BasedOnStrategy {
		fmt.Println("No client strategy yet; suggestions follow general best practice.")
		fmt.Println()
	}
	fmt.Println(sg.Text)
	return nil
}
