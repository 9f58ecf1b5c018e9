package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sichenz/AdNova/internal/config"
	"github.com/sichenz/AdNova/internal/export"
)

var showCmd = &cobra.Command{
	Use:   "show <ad-id>",
	Short: "Render an ad as markdown, HTML or styled terminal output",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var (
	showFormat    string
	showWidth     int
	showRevisions bool
)

func init() {
	f := showCmd.Flags()
	f.StringVar(&showFormat, "format", "terminal", "output format: terminal, markdown or html")
	f.IntVar(&showWidth, "width", 80, "word wrap width for terminal output")
	f.BoolVar(&showRevisions, "revisions", false, "also list regenerated revisions")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx, (*config.Config).Validate)
	if err != nil {
		return err
	}
	defer a.Close()

	ad, err := a.GetAd(ctx, args[0])
	if err != nil {
		return err
	}
	brief, err := a.GetBrief(ctx, ad.BriefID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(ad)
	}

	md := export.Markdown(ad, brief)
	switch showFormat {
	case "markdown", "md":
		fmt.Print(md)
	case "html":
		html, err := export.HTML(md)
		if err != nil {
			return err
		}
		fmt.Print(html)
	case "terminal":
		out, err := export.Terminal(md, showWidth)
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		return fmt.Errorf("unsupported format %q", showFormat)
	}

	if showRevisions {
		revs, err := a.Revisions(ctx, ad.ID)
		if err != nil {
			return err
		}
		if len(revs) > 0 {
			fmt.Println("Revisions:")
			for _, r := range revs {
				fmt.Printf("  %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"))
			}
		}
	}
	return nil
}
