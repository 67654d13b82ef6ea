package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/palette"
)

var catalogAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show the color tone balance of the catalog",
	Long: `Classify every catalog photo by the hue of its dominant color and print
the tone distribution per category and overall, followed by suggestions for
subjects that would balance an underrepresented tone.`,
	RunE: runCatalogAnalyze,
}

func init() {
	catalogCmd.AddCommand(catalogAnalyzeCmd)

	catalogAnalyzeCmd.Flags().Bool("db", false, "Read the catalog from PostgreSQL instead of the catalog file")
	catalogAnalyzeCmd.Flags().Bool("json", false, "Output as JSON")
}

// AnalyzeResult represents the tone analysis output
type AnalyzeResult struct {
	Categories      map[string]palette.Stats `json:"categories"`
	Overall         palette.Stats            `json:"overall"`
	Recommendations []palette.Recommendation `json:"recommendations"`
}

func printStats(name string, s palette.Stats) {
	fmt.Printf("%s (%d photos)\n", name, s.Total)
	for _, t := range palette.Tones {
		if s.Counts[t] == 0 {
			continue
		}
		fmt.Printf("  %-8s %4d  %5.1f%%\n", t, s.Counts[t], s.Percent(t))
	}
}

func runCatalogAnalyze(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := loadCatalog(context.Background(), cfg, mustGetBool(cmd, "db"))
	if err != nil {
		return err
	}

	result := AnalyzeResult{Categories: make(map[string]palette.Stats)}
	for _, name := range c.Categories() {
		photos, err := c.Category(name)
		if err != nil {
			return err
		}
		result.Categories[name] = palette.Analyze(photos)
	}
	result.Overall = palette.Analyze(c.Flatten())
	result.Recommendations = palette.Recommend(result.Overall)

	if jsonOutput {
		return outputJSON(result)
	}

	for _, name := range c.Categories() {
		printStats(name, result.Categories[name])
		fmt.Println()
	}
	printStats("Overall", result.Overall)

	if len(result.Recommendations) == 0 {
		fmt.Println("\nThe portfolio is well balanced.")
		return nil
	}
	fmt.Println("\nSuggestions:")
	for _, rec := range result.Recommendations {
		fmt.Printf("  %s is %.1f%% (below %.0f%%): try %s\n", rec.Tone, rec.Percent, rec.Minimum, strings.Join(rec.Subjects, ", "))
	}
	return nil
}
