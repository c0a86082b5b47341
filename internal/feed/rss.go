package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/feeds"
)

// RSS renders the feed as RSS 2.0 so any podcast application can
// subscribe to the adapted feed directly.
//
// Items carry the web player link; there are no audio enclosures.
func (f *Feed) RSS(ctx context.Context) (string, error) {
	title, err := f.Title(ctx)
	if err != nil {
		return "", err
	}
	description, err := f.Description(ctx)
	if err != nil {
		return "", err
	}
	coverURL, err := f.CoverURL(ctx)
	if err != nil {
		return "", err
	}

	episodes, _, err := f.NewEpisodes(ctx, nil)
	if err != nil {
		return "", err
	}

	out := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: f.Link()},
		Description: description,
		Created:     time.Now(),
	}
	if coverURL != "" {
		out.Image = &feeds.Image{Url: coverURL, Title: title, Link: f.Link()}
	}

	for _, ep := range episodes {
		out.Add(&feeds.Item{
			Id:          ep.GUID,
			Title:       ep.Title,
			Link:        &feeds.Link{Href: ep.Link},
			Description: ep.Description,
			Created:     ep.Published,
		})
	}

	rss, err := out.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to render RSS: %w", err)
	}

	return rss, nil
}
