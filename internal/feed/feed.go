// Package feed adapts Spotify shows into the podcast feed model the
// host application polls: feed-level metadata served from the local
// cache, and an episode listing diffed against the GUIDs the host has
// already seen.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/spotcast/internal/cache"
	"github.com/jfmyers9/spotcast/pkg/spotify"
)

const (
	// Episodes carry no downloadable audio; they link to the Spotify
	// web player instead.
	episodeMimeType = "text/html"

	// unknownFileSize marks enclosures whose size is not known.
	unknownFileSize = -1
)

// Episode is a feed episode in the host's model.
type Episode struct {
	GUID        string        // Stable identifier (Spotify episode ID)
	Title       string        // Episode title
	Description string        // Episode description
	Link        string        // Web player URL
	URL         string        // Same as Link; there is no media URL
	MimeType    string        // Always text/html
	FileSize    int64         // Always -1 (unknown)
	Duration    time.Duration // Episode length
	Published   time.Time     // Release date at the precision Spotify reported
}

// Feed adapts a single Spotify show.
//
// Metadata accessors (Title, Description, CoverURL) are answered from
// the cache when possible; a miss fetches the show once and fills the
// cache for subsequent refreshes.
type Feed struct {
	ShowID string

	handler *Handler
}

// Link returns the show's public web player URL.
func (f *Feed) Link() string {
	return ShowURL(f.ShowID)
}

// Title returns the show's name.
func (f *Feed) Title(ctx context.Context) (string, error) {
	info, err := f.info(ctx)
	if err != nil {
		return "", err
	}
	return info.Name, nil
}

// Description returns the show's description.
func (f *Feed) Description(ctx context.Context) (string, error) {
	info, err := f.info(ctx)
	if err != nil {
		return "", err
	}
	return info.Description, nil
}

// CoverURL returns the show's cover image URL.
func (f *Feed) CoverURL(ctx context.Context) (string, error) {
	info, err := f.info(ctx)
	if err != nil {
		return "", err
	}
	return info.ImageURL, nil
}

// ETag returns the cached ETag validator for the show, if any.
//
// Validators are only ever read from the cache; the host uses them as
// hints and an empty value just means "no hint".
func (f *Feed) ETag() string {
	if info, ok := f.handler.cache.Show(f.ShowID); ok {
		return info.ETag
	}
	return ""
}

// LastModified returns the cached Last-Modified validator for the show,
// if any.
func (f *Feed) LastModified() string {
	if info, ok := f.handler.cache.Show(f.ShowID); ok {
		return info.LastModified
	}
	return ""
}

// NewEpisodes lists the show's current episodes and returns those whose
// GUID is not in existingGUIDs, together with every GUID seen in the
// listing. The host passes the GUIDs it already knows and persists the
// seen list for the next refresh.
func (f *Feed) NewEpisodes(ctx context.Context, existingGUIDs []string) ([]Episode, []string, error) {
	episodes, err := f.handler.client.Shows().AllEpisodes(ctx, f.ShowID, f.handler.market, f.handler.maxEpisodes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list episodes for show %s: %w", f.ShowID, err)
	}

	existing := make(map[string]bool, len(existingGUIDs))
	for _, guid := range existingGUIDs {
		existing[guid] = true
	}

	var newEpisodes []Episode
	seen := make([]string, 0, len(episodes))

	for _, ep := range episodes {
		seen = append(seen, ep.ID)
		if existing[ep.ID] {
			continue
		}
		newEpisodes = append(newEpisodes, mapEpisode(ep))
	}

	return newEpisodes, seen, nil
}

// info returns the show's metadata, fetching and caching it on a miss.
func (f *Feed) info(ctx context.Context) (*cache.ShowInfo, error) {
	if info, ok := f.handler.cache.Show(f.ShowID); ok {
		return info, nil
	}
	return f.handler.fetchShowInfo(ctx, f.ShowID)
}

// mapEpisode converts an API episode into the host's episode model.
func mapEpisode(ep spotify.Episode) Episode {
	return Episode{
		GUID:        ep.ID,
		Title:       ep.Name,
		Description: ep.Description,
		Link:        ep.ExternalURL,
		URL:         ep.ExternalURL,
		MimeType:    episodeMimeType,
		FileSize:    unknownFileSize,
		Duration:    ep.Duration,
		Published:   ep.ReleaseDate,
	}
}
