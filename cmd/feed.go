package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/spotcast/internal/config"
	"github.com/jfmyers9/spotcast/internal/feed"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var feedDataDir string

// feedCmd represents the feed command
var feedCmd = &cobra.Command{
	Use:   "feed <show-url>",
	Short: "Render a show as an RSS feed",
	Long: `Render a Spotify show as an RSS feed on stdout.

Each item links to the episode's web player page; there are no
enclosures because Spotify does not expose audio files. The output can
be served to podcast clients that accept link-only feeds:

  spotcast feed https://open.spotify.com/show/4rOoJ6Egrf8K2IrywzwOMk > show.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.Flags().StringVar(&feedDataDir, "data-dir", "", "Data directory for cache and database (default: ~/.local/share/spotcast)")
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dataDir, err := resolveDataDir(feedDataDir)
	if err != nil {
		return err
	}

	handler, err := newFeedHandler(cfg, dataDir, zerolog.Nop())
	if err != nil {
		return err
	}

	f, err := handler.Resolve(canonicalShowURL(args[0]))
	if err != nil {
		if err == feed.ErrNotHandled {
			return fmt.Errorf("not a Spotify show URL: %s", args[0])
		}
		return err
	}

	rss, err := f.RSS(ctx)
	if err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}

	fmt.Println(rss)
	return nil
}
