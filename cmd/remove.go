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

var removeDataDir string

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <show-url>",
	Short: "Unsubscribe from a show",
	Long: `Unsubscribe from a Spotify show.

The subscription, its episode history, and the cached show metadata are
all removed. The argument takes the same forms as 'spotcast add'.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().StringVar(&removeDataDir, "data-dir", "", "Data directory for cache and database (default: ~/.local/share/spotcast)")
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dataDir, err := resolveDataDir(removeDataDir)
	if err != nil {
		return err
	}

	url := canonicalShowURL(args[0])
	showID := feed.ExtractShowID(url)
	if showID == "" {
		return fmt.Errorf("not a Spotify show URL: %s", args[0])
	}

	st, err := openStore(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Remove(ctx, showID); err != nil {
		return err
	}

	// Drop cached metadata too. Credentials may be missing when the
	// handler cannot be built; removal still succeeded.
	if handler, err := newFeedHandler(cfg, dataDir, zerolog.Nop()); err == nil {
		_ = handler.Forget(url)
	}

	fmt.Printf("Unsubscribed from %s\n", showID)
	return nil
}
