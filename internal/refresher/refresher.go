// Package refresher drives the periodic feed refresh: on every tick it
// resolves each subscribed show, diffs the episode listing against the
// GUIDs recorded in the store, and records what is new.
package refresher

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jfmyers9/spotcast/internal/feed"
	"github.com/jfmyers9/spotcast/internal/store"
	"github.com/rs/zerolog"
)

// Config holds refresher configuration
type Config struct {
	PollInterval time.Duration // How often to refresh all subscriptions
}

// Refresher coordinates the refresh loop over the subscription store
type Refresher struct {
	config  Config
	handler *feed.Handler
	store   *store.Store
	logger  zerolog.Logger
}

// New creates a new Refresher instance
func New(cfg Config, handler *feed.Handler, st *store.Store, logger zerolog.Logger) *Refresher {
	return &Refresher{
		config:  cfg,
		handler: handler,
		store:   st,
		logger:  logger.With().Str("component", "refresher").Logger(),
	}
}

// Run starts the refresh loop and blocks until a shutdown signal is
// received
func (r *Refresher) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Handle first signal gracefully, second signal forces exit
	go func() {
		<-sigChan
		r.logger.Info().Msg("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Second signal forces exit
		<-sigChan
		r.logger.Warn().Msg("Second shutdown signal received, forcing exit")
		os.Exit(1)
	}()

	if err := r.run(ctx); err != nil && err != context.Canceled {
		return err
	}

	return nil
}

// run is the main refresh loop
func (r *Refresher) run(ctx context.Context) error {
	r.logger.Info().
		Dur("interval", r.config.PollInterval).
		Msg("Starting refresher")

	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	// Refresh immediately on start
	if err := r.RefreshAll(ctx); err != nil {
		r.logger.Error().Err(err).Msg("Refresh failed")
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("Refresher stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := r.RefreshAll(ctx); err != nil {
				r.logger.Error().Err(err).Msg("Refresh failed")
			}
		}
	}
}

// RefreshAll refreshes every subscription once. Per-show failures are
// logged and do not stop the cycle.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	subs, err := r.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}

	if len(subs) == 0 {
		r.logger.Debug().Msg("No subscriptions to refresh")
		return nil
	}

	r.logger.Debug().Int("count", len(subs)).Msg("Refreshing subscriptions")

	for _, sub := range subs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		newCount, err := r.refreshOne(ctx, sub)
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("show_id", sub.ShowID).
				Msg("Failed to refresh show")
			continue
		}

		if newCount > 0 {
			r.logger.Info().
				Str("show_id", sub.ShowID).
				Str("title", sub.Title).
				Int("new_episodes", newCount).
				Msg("Found new episodes")
		}
	}

	return nil
}

// refreshOne refreshes a single subscription and returns the number of
// new episodes found
func (r *Refresher) refreshOne(ctx context.Context, sub store.Subscription) (int, error) {
	f, err := r.handler.Resolve(sub.URL)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve %s: %w", sub.URL, err)
	}

	existing, err := r.store.SeenGUIDs(ctx, sub.ShowID)
	if err != nil {
		return 0, fmt.Errorf("failed to load seen episodes: %w", err)
	}

	newEpisodes, seen, err := f.NewEpisodes(ctx, existing)
	if err != nil {
		return 0, err
	}

	for _, ep := range newEpisodes {
		r.logger.Info().
			Str("show_id", sub.ShowID).
			Str("guid", ep.GUID).
			Str("title", ep.Title).
			Time("published", ep.Published).
			Msg("New episode")
	}

	if err := r.store.MarkSeen(ctx, sub.ShowID, seen); err != nil {
		return 0, fmt.Errorf("failed to record seen episodes: %w", err)
	}

	// Fill in the stored title once metadata is available
	if sub.Title == "" {
		if title, err := f.Title(ctx); err == nil && title != "" {
			if err := r.store.SetTitle(ctx, sub.ShowID, title); err != nil {
				r.logger.Warn().Err(err).Str("show_id", sub.ShowID).Msg("Failed to store title")
			}
		}
	}

	return len(newEpisodes), nil
}
