package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/portfolio/internal/catalog"
	"github.com/kozaktomas/portfolio/internal/config"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Print the video playlist",
	Long: `Print the featured video followed by random videos from the video
catalog.`,
	RunE: runPlaylist,
}

func init() {
	rootCmd.AddCommand(playlistCmd)

	playlistCmd.Flags().Int("count", -1, "Number of random videos (defaults to the configured count)")
	playlistCmd.Flags().Uint64("seed", 0, "Random seed for a reproducible playlist (0 = random)")
	playlistCmd.Flags().Bool("json", false, "Output as JSON")
}

func runPlaylist(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	n := cfg.Gallery.Videos.Random
	if count := mustGetInt(cmd, "count"); count >= 0 {
		n = count
	}

	var videos []catalog.Video
	vc, err := catalog.LoadVideos(cfg.Catalog.VideosPath)
	switch {
	case err == nil:
		videos = vc.All()
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(os.Stderr, "Warning: video catalog %s not found\n", cfg.Catalog.VideosPath)
	default:
		return err
	}

	playlist := catalog.Playlist(videos, cfg.Gallery.Videos.Featured, n, commandRand(mustGetUint64(cmd, "seed")))

	if mustGetBool(cmd, "json") {
		return outputJSON(playlist)
	}
	for i, v := range playlist {
		fmt.Printf("%d. %s [%s] %s\n", i+1, v.Title, v.Duration, v.URL)
	}
	return nil
}
