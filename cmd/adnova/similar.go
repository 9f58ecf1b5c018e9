package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/config"
	"github.com/sichenz/AdNova/internal/memory"
)

var similarCmd = &cobra.Command{
	Use:   "similar <brief-id>",
	Short: "Find past campaigns similar to a brief",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search briefs, ads and feedback in semantic memory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var memoryTopK int

func init() {
	similarCmd.Flags().IntVarP(&memoryTopK, "limit", "k", 5, "number of results")
	searchCmd.Flags().IntVarP(&memoryTopK, "limit", "k", 5, "number of results")
	rootCmd.AddCommand(similarCmd, searchCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).ValidateForMemory)
	if err != nil {
		return err
	}
	defer a.Close()

	hits, err := a.SimilarCampaigns(ctx, args[0], memoryTopK)
	if err != nil {
		return err
	}
	return printHits(hits)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).ValidateForMemory)
	if err != nil {
		return err
	}
	defer a.Close()

	hits, err := a.Search(ctx, args[0], memoryTopK)
	if err != nil {
		return err
	}
	return printHits(hits)
}

func printHits(hits []memory.Hit) error {
	if jsonOutput {
		return printJSON(hits)
	}
	if len(hits) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for i, h := range hits {
		fmt.Printf("%d. [%s] %s (%.3f)\n", i+1, h.Kind, h.RefID, h.Similarity)
		if h.Product != "" {
			fmt.Printf("   Product: %s\n", h.Product)
		}
		fmt.Printf("   %s\n", firstLine(h.Text))
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
