package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/selection"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery [category]",
	Short: "Select photos for a category gallery",
	Long: `Select a diverse set of photos from one catalog category using the
category's configured policy. Balanced galleries avoid repeating a location
and similar colors; coordinated galleries keep colors close to a random anchor.

Examples:
  portfolio gallery 城市光影
  portfolio gallery 大地映像 --count 9 --seed 42
  portfolio gallery 城市光影 --policy coordinated --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGallery,
}

func init() {
	rootCmd.AddCommand(galleryCmd)

	galleryCmd.Flags().Int("count", 0, "Number of photos (defaults to the configured count)")
	galleryCmd.Flags().String("policy", "", "Diversity policy: balanced or coordinated (defaults to the configured policy)")
	galleryCmd.Flags().Float64("threshold", 0, "Color distance threshold (defaults to the configured threshold)")
	galleryCmd.Flags().Uint64("seed", 0, "Random seed for a reproducible selection (0 = random)")
	galleryCmd.Flags().Bool("db", false, "Read the catalog from PostgreSQL instead of the catalog file")
	galleryCmd.Flags().Bool("json", false, "Output as JSON")
}

func runGallery(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cat, ok := cfg.Gallery.Category(name)
	if !ok {
		cat = config.CategoryConfig{Name: name, Policy: selection.Balanced, Count: 6}
	}
	if count := mustGetInt(cmd, "count"); count > 0 {
		cat.Count = count
	}
	if s := mustGetString(cmd, "policy"); s != "" {
		if cat.Policy, err = selection.ParsePolicy(s); err != nil {
			return err
		}
	}
	threshold := cfg.Gallery.Thresholds.Gallery
	if t := mustGetFloat64(cmd, "threshold"); t > 0 {
		threshold = t
	}

	c, err := loadCatalog(context.Background(), cfg, mustGetBool(cmd, "db"))
	if err != nil {
		return err
	}
	photos, err := c.Category(name)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, c.Categories())
	}

	selected, err := selection.Select(cat.Policy, photos, cat.Count, selection.Options{
		ColorThreshold: threshold,
		Rand:           commandRand(mustGetUint64(cmd, "seed")),
	})
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}

	if mustGetBool(cmd, "json") {
		return outputJSON(selected)
	}

	fmt.Printf("Gallery: %s (%s, %d of %d photos)\n\n", name, cat.Policy, len(selected), len(photos))
	for i, p := range selected {
		fmt.Printf("%2d. %-40s %-12s %s\n", i+1, p.Filename, catalog.BaseLocationName(p.Filename), p.Color)
	}
	return nil
}
