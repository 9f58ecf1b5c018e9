package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/config"
)

var audienceCmd = &cobra.Command{
	Use:   "audience <brief-id>",
	Short: "Profile a brief's target audience and recommend how to reach it",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudience,
}

func init() {
	rootCmd.AddCommand(audienceCmd)
}

func runAudience(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).ValidateForGeneration)
	if err != nil {
		return err
	}
	defer a.Close()

	in, err := a.AnalyzeAudience(ctx, args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(in)
	}

	p := in.Profile
	fmt.Printf("Audience: %s\n", in.OriginalDescription)
	if p.ParsingError {
		fmt.Printf("\n%s\n\n", p.RawAnalysis)
	} else {
		d := p.Demographics
		for _, f := range [][2]string{
			{"Age", d.AgeRange},
			{"Income", d.IncomeLevel},
			{"Location", d.Location},
			{"Occupation", d.Occupation},
		} {
			if f[1] != "" {
				fmt.Printf("  %s: %s\n", f[0], f[1])
			}
		}
		printList("Platforms", p.Communication.Platforms)
		printList("Tone", p.Communication.Tone)
		for _, seg := range p.Segments {
			printList("Segment "+seg.Name, seg.Characteristics)
		}
	}

	r := in.Recommendations
	fmt.Println("Recommendations")
	printList("Messaging", r.Messaging)
	printList("Channels", r.Channels)
	printList("Content", r.Content)
	printList("Targeting", r.Targeting)
	printList("Creative", r.Creative)
	return nil
}
