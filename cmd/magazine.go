package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/magazine"
)

var magazineCmd = &cobra.Command{
	Use:   "magazine",
	Short: "Build a magazine issue from the whole catalog",
	Long: `Shuffle every catalog photo into magazine slides. Photos on one slide
never share a location and differ in color when the pool allows it.

Spread mode picks a layout per slide; vertical mode places two photos per slide.

Examples:
  portfolio magazine
  portfolio magazine --mode vertical --seed 7 --json`,
	RunE: runMagazine,
}

func init() {
	rootCmd.AddCommand(magazineCmd)

	magazineCmd.Flags().String("mode", "spread", "Layout mode: spread or vertical")
	magazineCmd.Flags().Uint64("seed", 0, "Random seed for a reproducible issue (0 = random)")
	magazineCmd.Flags().Bool("db", false, "Read the catalog from PostgreSQL instead of the catalog file")
	magazineCmd.Flags().Bool("json", false, "Output as JSON")
}

func runMagazine(cmd *cobra.Command, args []string) error {
	mode, err := magazine.ParseMode(mustGetString(cmd, "mode"))
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := loadCatalog(context.Background(), cfg, mustGetBool(cmd, "db"))
	if err != nil {
		return err
	}

	issue, err := magazine.Build(c.Flatten(), mode, magazine.Options{
		CoverCategory:  cfg.Gallery.Magazine.CoverCategory,
		ColorThreshold: cfg.Gallery.Thresholds.Slide,
		Weights:        cfg.Gallery.Magazine.SlideWeights,
		Rand:           commandRand(mustGetUint64(cmd, "seed")),
	})
	if err != nil {
		return fmt.Errorf("failed to build magazine: %w", err)
	}

	if mustGetBool(cmd, "json") {
		return outputJSON(issue)
	}

	fmt.Printf("Issue %s (%d, %s)\n", issue.ID, issue.Year, issue.Mode)
	if issue.Cover != nil {
		fmt.Printf("Cover: %s/%s\n", issue.Cover.Category, issue.Cover.Filename)
	}
	for i, s := range issue.Slides {
		fmt.Printf("\nSlide %d [%s]\n", i+1, s.Layout)
		for _, p := range s.Photos {
			fmt.Printf("  %s/%s %s\n", p.Category, p.Filename, p.Color)
		}
	}
	return nil
}
