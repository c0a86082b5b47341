package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jfmyers9/spotcast/internal/cache"
	"github.com/jfmyers9/spotcast/pkg/spotify"
	"github.com/rs/zerolog"
)

const showURLPrefix = "https://open.spotify.com/show/"

// ErrNotHandled is returned by Resolve for subscription URLs that are
// not Spotify show URLs. The host falls through to its other feed
// handlers in that case.
var ErrNotHandled = errors.New("not a spotify show URL")

// Config holds handler configuration.
type Config struct {
	Market      string // Market passed to episode listings
	MaxEpisodes int    // Maximum episodes per refresh (0 = one page)
}

// Handler is the feed-subscription hook the host calls to resolve
// subscription URLs into feeds.
type Handler struct {
	client      *spotify.Client
	cache       *cache.Cache
	market      string
	maxEpisodes int
	logger      zerolog.Logger
}

// NewHandler creates a feed handler backed by the given API client and
// cache.
func NewHandler(client *spotify.Client, c *cache.Cache, cfg Config, logger zerolog.Logger) *Handler {
	return &Handler{
		client:      client,
		cache:       c,
		market:      cfg.Market,
		maxEpisodes: cfg.MaxEpisodes,
		logger:      logger.With().Str("component", "feed").Logger(),
	}
}

// Resolve returns a Feed for a Spotify show subscription URL, or
// ErrNotHandled for URLs this handler does not recognize.
func (h *Handler) Resolve(url string) (*Feed, error) {
	showID := ExtractShowID(url)
	if showID == "" {
		return nil, ErrNotHandled
	}

	h.logger.Debug().Str("show_id", showID).Msg("Resolved show URL")

	return &Feed{ShowID: showID, handler: h}, nil
}

// Forget drops a show's cached metadata. The host calls this when the
// podcast is deleted.
func (h *Handler) Forget(url string) error {
	showID := ExtractShowID(url)
	if showID == "" {
		return nil
	}

	h.logger.Debug().Str("show_id", showID).Msg("Dropping cached show info")
	return h.cache.DeleteShow(showID)
}

// fetchShowInfo fetches a show's metadata from the API and stores it in
// the cache.
func (h *Handler) fetchShowInfo(ctx context.Context, showID string) (*cache.ShowInfo, error) {
	show, err := h.client.Shows().Get(ctx, showID, h.market)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch show %s: %w", showID, err)
	}

	info := cache.ShowInfo{
		Name:         show.Name,
		Description:  show.Description,
		ImageURL:     show.CoverURL(),
		Link:         show.ExternalURL,
		ETag:         show.ETag,
		LastModified: show.LastModified,
	}
	if info.Link == "" {
		info.Link = ShowURL(showID)
	}

	if err := h.cache.SetShow(showID, info); err != nil {
		h.logger.Warn().Err(err).Str("show_id", showID).Msg("Failed to cache show info")
	}

	return &info, nil
}

// ExtractShowID extracts the show ID from a subscription URL.
//
// Recognized forms:
//
//	https://open.spotify.com/show/4rOoJ6Egrf8K2IrywzwOMk
//	https://open.spotify.com/show/4rOoJ6Egrf8K2IrywzwOMk?si=...
//	spotify:show:4rOoJ6Egrf8K2IrywzwOMk
//
// Returns the empty string for anything else.
func ExtractShowID(url string) string {
	var id string
	switch {
	case strings.HasPrefix(url, showURLPrefix):
		id = strings.TrimPrefix(url, showURLPrefix)
	case strings.HasPrefix(url, "spotify:show:"):
		id = strings.TrimPrefix(url, "spotify:show:")
	default:
		return ""
	}

	// Strip query parameters and any trailing path segments
	id, _, _ = strings.Cut(id, "?")
	id = strings.ReplaceAll(id, "/", "")

	return id
}

// ShowURL returns the public web player URL for a show ID.
func ShowURL(showID string) string {
	return showURLPrefix + showID
}
