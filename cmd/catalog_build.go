package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/database/postgres"
	"github.com/kozaktomas/portfolio/internal/fingerprint"
	"github.com/kozaktomas/portfolio/internal/imaging"
)

var catalogBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Process source photos and write the catalog",
	Long: `Process every image in the source category folders into web-ready
photos and write photos.json next to them.

Portfolio photos are resized to the portfolio width and watermarked; asset
folders are resized to the asset width without a watermark. The output
directory is cleaned first.

Examples:
  # Build from SOURCE_DIR into PUBLIC_DIR
  portfolio catalog build

  # Build only one category with 8 workers
  portfolio catalog build --category 城市光影 --concurrency 8

  # Build and publish the catalog to PostgreSQL
  portfolio catalog build --push`,
	RunE: runCatalogBuild,
}

func init() {
	catalogCmd.AddCommand(catalogBuildCmd)

	catalogBuildCmd.Flags().String("source", "", "Source directory (defaults to SOURCE_DIR)")
	catalogBuildCmd.Flags().String("output", "", "Output directory (defaults to PUBLIC_DIR)")
	catalogBuildCmd.Flags().StringSlice("category", nil, "Categories to build (defaults to the configured categories)")
	catalogBuildCmd.Flags().Int("concurrency", 0, "Number of parallel workers (defaults to BUILD_CONCURRENCY)")
	catalogBuildCmd.Flags().Int("duplicate-threshold", fingerprint.DefaultThreshold, "Max hash distance reported as a near duplicate (negative disables)")
	catalogBuildCmd.Flags().Bool("push", false, "Replace the PostgreSQL catalog after building")
	catalogBuildCmd.Flags().Bool("json", false, "Output as JSON instead of progress bar")
}

// BuildResult represents the result of a catalog build
type BuildResult struct {
	Success       bool               `json:"success"`
	Photos        int                `json:"photos"`
	Assets        int                `json:"assets"`
	Categories    []string           `json:"categories"`
	Missing       []string           `json:"missing,omitempty"`
	Duplicates    []fingerprint.Pair `json:"duplicates,omitempty"`
	Errors        []string           `json:"errors,omitempty"`
	Pushed        bool               `json:"pushed"`
	DurationMs    int64              `json:"duration_ms"`
	DurationHuman string             `json:"duration_human,omitempty"`
}

func newBuilder(cmd *cobra.Command, cfg *config.Config) *imaging.Builder {
	b := &imaging.Builder{
		Source:         cfg.Catalog.SourceDir,
		Output:         cfg.Catalog.PublicDir,
		Categories:     cfg.Gallery.CategoryNames(),
		AssetFolders:   cfg.Gallery.Build.AssetFolders,
		PortfolioWidth: cfg.Gallery.Build.PortfolioWidth,
		AssetWidth:     cfg.Gallery.Build.AssetWidth,
		Watermark:      cfg.Gallery.Build.Watermark,
		Quality:        cfg.Gallery.Build.Quality,
		Concurrency:    cfg.Catalog.Concurrency,
	}
	if source := mustGetString(cmd, "source"); source != "" {
		b.Source = source
	}
	if output := mustGetString(cmd, "output"); output != "" {
		b.Output = output
	}
	if categories := mustGetStringSlice(cmd, "category"); len(categories) > 0 {
		b.Categories = categories
	}
	if concurrency := mustGetInt(cmd, "concurrency"); concurrency > 0 {
		b.Concurrency = concurrency
	}
	b.DuplicateThreshold = mustGetInt(cmd, "duplicate-threshold")
	return b
}

func runCatalogBuild(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")
	push := mustGetBool(cmd, "push")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if push && cfg.Database.URL == "" {
		return errors.New("--push requires DATABASE_URL")
	}

	ctx, cancel := interruptContext()
	defer cancel()

	b := newBuilder(cmd, cfg)
	total, err := b.Count()
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", b.Source, err)
	}

	if !jsonOutput {
		fmt.Printf("Building %d images from %s into %s\n", total, b.Source, b.Output)
	}
	bar := newProgressBar(total, "Processing", jsonOutput)
	b.OnProgress = func(imaging.Progress) {
		bar.Add(1)
	}

	startTime := time.Now()
	report, err := b.Build(ctx)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if push {
		if !jsonOutput {
			fmt.Println("Pushing catalog to PostgreSQL...")
		}
		pool, err := postgres.Open(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.NewPhotoRepository(pool).ReplaceCatalog(ctx, report.Catalog); err != nil {
			return fmt.Errorf("failed to push catalog: %w", err)
		}
	}

	duration := time.Since(startTime)
	result := BuildResult{
		Success:       len(report.Errors) == 0,
		Photos:        report.Processed,
		Assets:        report.Assets,
		Categories:    report.Catalog.Categories(),
		Missing:       report.Missing,
		Duplicates:    report.Duplicates,
		Pushed:        push,
		DurationMs:    duration.Milliseconds(),
		DurationHuman: duration.Round(time.Millisecond).String(),
	}
	for _, e := range report.Errors {
		result.Errors = append(result.Errors, e.Error())
	}

	if jsonOutput {
		return outputJSON(result)
	}

	fmt.Printf("\nProcessed: %d photos in %d categories\n", result.Photos, len(result.Categories))
	fmt.Printf("Assets: %d\n", result.Assets)
	for _, m := range result.Missing {
		fmt.Printf("Warning: source folder %s not found\n", m)
	}
	for _, d := range result.Duplicates {
		fmt.Printf("Warning: %s/%s looks like %s/%s (distance %d)\n", d.A.Category, d.A.Filename, d.B.Category, d.B.Filename, d.Distance)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("Errors: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if push {
		fmt.Println("Catalog pushed to PostgreSQL")
	}
	fmt.Printf("Duration: %s\n", result.DurationHuman)
	return nil
}
