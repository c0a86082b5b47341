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

var (
	episodesDataDir string
	episodesLimit   int
)

// episodesCmd represents the episodes command
var episodesCmd = &cobra.Command{
	Use:   "episodes <show-url>",
	Short: "List a show's episodes",
	Long: `List the episodes of a Spotify show, newest first.

The show does not have to be subscribed. The argument takes the same
forms as 'spotcast add'.`,
	Args: cobra.ExactArgs(1),
	RunE: runEpisodes,
}

func init() {
	rootCmd.AddCommand(episodesCmd)
	episodesCmd.Flags().StringVar(&episodesDataDir, "data-dir", "", "Data directory for cache and database (default: ~/.local/share/spotcast)")
	episodesCmd.Flags().IntVarP(&episodesLimit, "limit", "n", 0, "Maximum episodes to list (0 = one page of 50)")
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if episodesLimit > 0 {
		cfg.MaxEpisodes = episodesLimit
	}

	dataDir, err := resolveDataDir(episodesDataDir)
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

	title, err := f.Title(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up show: %w", err)
	}

	// With no known GUIDs every episode comes back as new
	eps, _, err := f.NewEpisodes(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list episodes: %w", err)
	}

	fmt.Printf("%s - %d episodes\n\n", title, len(eps))
	for _, ep := range eps {
		published := ""
		if !ep.Published.IsZero() {
			published = ep.Published.Format("2006-01-02")
		}
		fmt.Printf("%10s  %8s  %s\n", published, formatDuration(ep.Duration), ep.Title)
	}

	return nil
}

// formatDuration renders a duration as h:mm:ss or m:ss
func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
