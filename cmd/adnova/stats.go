package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display statistics about briefs, ads, feedback, brand voices and semantic memory.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).Validate)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.Stats(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(report)
	}

	fmt.Println(titleStyle.Render("=== AdNova Statistics ==="))
	fmt.Println()
	fmt.Printf("Database: %s\n", a.Config.DatabasePath)
	fmt.Println()
	fmt.Println("Campaigns:")
	fmt.Printf("  Briefs: %d\n", report.Briefs)
	fmt.Printf("  Ads: %d\n", report.Ads)
	fmt.Printf("  Failed variations: %d\n", report.FailedSlots)
	fmt.Printf("  Brand voices: %d\n", report.BrandVoices)
	fmt.Println()

	if len(report.AdsByType) > 0 {
		fmt.Println("  By type:")
		for _, row := range report.AdsByType {
			fmt.Printf("    %s: %d\n", row.AdType, row.Count)
		}
		fmt.Println()
	}

	fmt.Println("Feedback:")
	fmt.Printf("  Total: %d\n", report.Feedback)
	fmt.Printf("  Reflections: %d\n", report.Reflections)
	if report.HasScores {
		fmt.Printf("  Average score: %.1f/10\n", report.AverageScore)
	}
	fmt.Println()

	if report.MemoryEnabled {
		fmt.Println("Memory:")
		fmt.Printf("  Path: %s\n", a.Config.MemoryPath)
		fmt.Printf("  Records: %d\n", report.MemoryRecords)
		fmt.Println()
	}
	return nil
}
