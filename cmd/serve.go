package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/database/postgres"
	"github.com/kozaktomas/portfolio/internal/web"
	"github.com/kozaktomas/portfolio/internal/web/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the portfolio web server.

The server loads the photo catalog and serves gallery selections, magazine
issues, the video playlist and color statistics as JSON, together with the
processed photos under /public.

When DATABASE_URL is set the catalog is read from PostgreSQL and color
searches run in the database; otherwise the catalog file is used.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to (overrides WEB_HOST)")
}

// resolveServeHostPort applies explicitly set flags over the environment.
func resolveServeHostPort(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("port") {
		cfg.Web.Port = mustGetInt(cmd, "port")
	}
	if cmd.Flags().Changed("host") {
		cfg.Web.Host = mustGetString(cmd, "host")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	resolveServeHostPort(cmd, cfg)

	ctx := context.Background()

	var (
		store  catalog.Store = catalog.NewFileStore(cfg.Catalog.Path)
		finder handlers.NearestFinder
	)
	if cfg.Database.URL != "" {
		fmt.Printf("Connecting to PostgreSQL database...\n")
		pool, err := postgres.Open(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		repo := postgres.NewPhotoRepository(pool)
		store = repo
		finder = repo
		fmt.Printf("Using PostgreSQL backend\n")
	} else {
		fmt.Printf("Using catalog file %s\n", cfg.Catalog.Path)
	}

	lib := handlers.NewLibrary(store, cfg.Catalog.VideosPath)
	if err := lib.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	server := web.NewServer(cfg, lib, finder)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	if cfg.Web.AdminToken == "" {
		fmt.Printf("Catalog reload endpoint disabled (set WEB_ADMIN_TOKEN to enable)\n")
	}
	fmt.Printf("Starting portfolio on http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
