package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/spotcast/internal/config"
	"github.com/jfmyers9/spotcast/internal/feed"
	"github.com/jfmyers9/spotcast/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var addDataDir string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <show-url>",
	Short: "Subscribe to a show",
	Long: `Subscribe to a Spotify show.

The argument can be a web player URL, a spotify:show: URI, or a bare
show ID:

  spotcast add https://open.spotify.com/show/4rOoJ6Egrf8K2IrywzwOMk
  spotcast add spotify:show:4rOoJ6Egrf8K2IrywzwOMk
  spotcast add 4rOoJ6Egrf8K2IrywzwOMk

The show is looked up once to verify it exists and to record its
title.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addDataDir, "data-dir", "", "Data directory for cache and database (default: ~/.local/share/spotcast)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dataDir, err := resolveDataDir(addDataDir)
	if err != nil {
		return err
	}

	handler, err := newFeedHandler(cfg, dataDir, zerolog.Nop())
	if err != nil {
		return err
	}

	url := canonicalShowURL(args[0])
	f, err := handler.Resolve(url)
	if err != nil {
		if err == feed.ErrNotHandled {
			return fmt.Errorf("not a Spotify show URL: %s", args[0])
		}
		return err
	}

	// Fetch the show once so bad IDs fail here, not in the daemon
	title, err := f.Title(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up show: %w", err)
	}

	st, err := openStore(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	sub := store.Subscription{
		ShowID:  f.ShowID,
		URL:     url,
		Title:   title,
		AddedAt: time.Now(),
	}
	if err := st.Add(ctx, sub); err != nil {
		return err
	}

	fmt.Printf("Subscribed to %s (%s)\n", title, f.ShowID)
	return nil
}
