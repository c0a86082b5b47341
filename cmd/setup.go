package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jfmyers9/spotcast/internal/cache"
	"github.com/jfmyers9/spotcast/internal/config"
	"github.com/jfmyers9/spotcast/internal/feed"
	"github.com/jfmyers9/spotcast/internal/store"
	"github.com/jfmyers9/spotcast/pkg/spotify"
	"github.com/rs/zerolog"
)

// resolveDataDir returns the data directory, creating it if necessary.
// An empty override selects the default (~/.local/share/spotcast).
func resolveDataDir(override string) (string, error) {
	dataDir := override
	if dataDir == "" {
		dataDir = config.GetDataDir()
	}
	if dataDir == "" {
		return "", fmt.Errorf("failed to determine data directory")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dataDir, nil
}

// newFeedHandler wires an API client, the on-disk cache, and a feed
// handler from the loaded configuration
func newFeedHandler(cfg *config.Config, dataDir string, logger zerolog.Logger) (*feed.Handler, error) {
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return nil, fmt.Errorf("Spotify credentials not configured. Run 'spotcast auth' first")
	}

	c, err := cache.New(filepath.Join(dataDir, "cache.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	client, err := spotify.NewClient(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		TokenStore:   c,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	feedCfg := feed.Config{
		Market:      cfg.Market,
		MaxEpisodes: cfg.MaxEpisodes,
	}
	return feed.NewHandler(client, c, feedCfg, logger), nil
}

// canonicalShowURL turns a command argument into a show URL. Plain show
// IDs are accepted alongside full web player URLs and spotify: URIs.
func canonicalShowURL(arg string) string {
	if feed.ExtractShowID(arg) != "" {
		return arg
	}
	if arg != "" && !strings.ContainsAny(arg, "/:") {
		return feed.ShowURL(arg)
	}
	return arg
}

// openStore opens the subscription database inside the data directory
func openStore(dataDir string) (*store.Store, error) {
	st, err := store.Open(filepath.Join(dataDir, "spotcast.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open subscription store: %w", err)
	}
	return st, nil
}
