package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/config"
	"github.com/kozaktomas/portfolio/internal/database/postgres"
	"github.com/kozaktomas/portfolio/internal/selection"
)

func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// newProgressBar creates the progress bar used by long running commands.
// It writes nothing when quiet is set.
func newProgressBar(count int, description string, quiet bool) *progressbar.ProgressBar {
	if quiet {
		return progressbar.DefaultSilent(int64(count))
	}
	return progressbar.NewOptions(count,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)
}

// commandRand returns a random source; seed 0 means a fresh random seed.
func commandRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return selection.NewRand(seed)
}

// interruptContext returns a context cancelled on Ctrl+C or SIGTERM.
func interruptContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Println("\nReceived interrupt signal...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// loadCatalog reads the catalog from PostgreSQL when fromDB is set,
// otherwise from the catalog file.
func loadCatalog(ctx context.Context, cfg *config.Config, fromDB bool) (*catalog.Catalog, error) {
	if !fromDB {
		c, err := catalog.NewFileStore(cfg.Catalog.Path).Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		for _, d := range c.RemoveDuplicates() {
			fmt.Fprintf(os.Stderr, "Warning: skipping duplicate catalog entry %s\n", d)
		}
		return c, nil
	}

	pool, err := postgres.Open(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	c, err := postgres.NewPhotoRepository(pool).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from PostgreSQL: %w", err)
	}
	return c, nil
}
