package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/database"
	"github.com/kozaktomas/portfolio/internal/database/postgres"
)

var catalogPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Replace the PostgreSQL catalog with the catalog file",
	Long: `Validate the catalog file and replace every category and photo stored in
PostgreSQL with its contents. Migrations are applied first.`,
	RunE: runCatalogPush,
}

func init() {
	catalogCmd.AddCommand(catalogPushCmd)

	catalogPushCmd.Flags().String("file", "", "Catalog file (defaults to CATALOG_PATH)")
}

func runCatalogPush(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	path := cfg.Catalog.Path
	if file := mustGetString(cmd, "file"); file != "" {
		path = file
	}

	ctx := context.Background()
	c, err := catalog.NewFileStore(path).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	fmt.Printf("Connecting to PostgreSQL database...\n")
	pool, err := postgres.Open(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	var writer database.PhotoWriter = postgres.NewPhotoRepository(pool)
	if err := writer.ReplaceCatalog(ctx, c); err != nil {
		return fmt.Errorf("failed to push catalog: %w", err)
	}
	return printStoredCounts(ctx, writer, c.Categories())
}

// printStoredCounts prints what the database holds after a push.
func printStoredCounts(ctx context.Context, reader database.PhotoReader, categories []string) error {
	counts, err := reader.CountByCategory(ctx, categories)
	if err != nil {
		return fmt.Errorf("failed to count photos: %w", err)
	}
	total, err := reader.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count photos: %w", err)
	}
	for _, name := range categories {
		fmt.Printf("  %s: %d photos\n", name, counts[name])
	}
	fmt.Printf("Pushed %d photos\n", total)
	return nil
}
