package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ShowService provides show and episode operations for the Spotify Web API.
type ShowService struct {
	client *Client
}

const (
	// MaxPageSize is the maximum number of episodes the API returns per page.
	MaxPageSize = 50
)

// EpisodeParams controls a single episode-listing request.
type EpisodeParams struct {
	Market string // Optional: ISO 3166-1 alpha-2 market code
	Limit  int    // Page size, clamped to 1..MaxPageSize (0 means MaxPageSize)
	Offset int    // Index of the first episode to return
}

// showJSON is the wire representation of a show.
type showJSON struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Publisher     string      `json:"publisher"`
	TotalEpisodes int         `json:"total_episodes"`
	Images        []imageJSON `json:"images"`
	ExternalURLs  struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type imageJSON struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// episodeJSON is the wire representation of an episode.
type episodeJSON struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	DurationMS           int64    `json:"duration_ms"`
	ReleaseDate          string   `json:"release_date"`
	ReleaseDatePrecision string   `json:"release_date_precision"`
	Explicit             bool     `json:"explicit"`
	Languages            []string `json:"languages"`
	ExternalURLs         struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// episodePageJSON is the wire representation of a paginated episode listing.
type episodePageJSON struct {
	Items  []episodeJSON `json:"items"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Total  int           `json:"total"`
	Next   string        `json:"next"`
}

// Get fetches a show's metadata.
//
// The market parameter is optional; without it Spotify resolves the
// show against the token's country, which for client-credentials tokens
// often yields 404 for market-restricted shows.
func (s *ShowService) Get(ctx context.Context, id, market string) (*Show, error) {
	if id == "" {
		return nil, fmt.Errorf("spotify: show id is required")
	}

	query := url.Values{}
	if market != "" {
		query.Set("market", market)
	}

	body, headers, err := s.client.get(ctx, "/shows/"+id, query)
	if err != nil {
		return nil, err
	}

	var sj showJSON
	if err := json.Unmarshal(body, &sj); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse show response: %w", err)
	}

	show := showFromJSON(sj)
	show.ETag = headers.Get("Etag")
	show.LastModified = headers.Get("Last-Modified")

	return show, nil
}

// Episodes fetches one page of a show's episode listing.
func (s *ShowService) Episodes(ctx context.Context, id string, params EpisodeParams) (*EpisodePage, error) {
	if id == "" {
		return nil, fmt.Errorf("spotify: show id is required")
	}

	limit := params.Limit
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.Market != "" {
		query.Set("market", params.Market)
	}

	body, _, err := s.client.get(ctx, "/shows/"+id+"/episodes", query)
	if err != nil {
		return nil, err
	}

	var pj episodePageJSON
	if err := json.Unmarshal(body, &pj); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse episodes response: %w", err)
	}

	page := &EpisodePage{
		Episodes: make([]Episode, 0, len(pj.Items)),
		Limit:    pj.Limit,
		Offset:   pj.Offset,
		Total:    pj.Total,
		Next:     pj.Next,
	}
	for _, ej := range pj.Items {
		page.Episodes = append(page.Episodes, episodeFromJSON(ej))
	}

	return page, nil
}

// AllEpisodes fetches a show's episodes newest first, paging by
// offset/limit until max episodes are collected or the listing is
// exhausted.
//
// max <= 0 requests a single default page, matching the page-size cap
// of the API.
func (s *ShowService) AllEpisodes(ctx context.Context, id, market string, max int) ([]Episode, error) {
	singlePage := max <= 0
	if singlePage {
		max = MaxPageSize
	}

	var episodes []Episode
	offset := 0

	for len(episodes) < max {
		limit := max - len(episodes)
		if limit > MaxPageSize {
			limit = MaxPageSize
		}

		page, err := s.Episodes(ctx, id, EpisodeParams{Market: market, Limit: limit, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("spotify: failed to list episodes at offset %d: %w", offset, err)
		}

		episodes = append(episodes, page.Episodes...)

		if singlePage || len(page.Episodes) == 0 || page.Next == "" {
			break
		}
		offset += len(page.Episodes)
	}

	return episodes, nil
}

// showFromJSON maps the wire representation onto the public Show type.
func showFromJSON(sj showJSON) *Show {
	show := &Show{
		ID:            sj.ID,
		Name:          sj.Name,
		Description:   sj.Description,
		Publisher:     sj.Publisher,
		TotalEpisodes: sj.TotalEpisodes,
		ExternalURL:   sj.ExternalURLs.Spotify,
	}
	for _, img := range sj.Images {
		show.Images = append(show.Images, Image(img))
	}
	return show
}

// episodeFromJSON maps the wire representation onto the public Episode type.
func episodeFromJSON(ej episodeJSON) Episode {
	released, _ := ParseReleaseDate(ej.ReleaseDate, ej.ReleaseDatePrecision)

	return Episode{
		ID:                   ej.ID,
		Name:                 ej.Name,
		Description:          ej.Description,
		ExternalURL:          ej.ExternalURLs.Spotify,
		Duration:             time.Duration(ej.DurationMS) * time.Millisecond,
		ReleaseDate:          released,
		ReleaseDatePrecision: ej.ReleaseDatePrecision,
		Explicit:             ej.Explicit,
		Languages:            ej.Languages,
	}
}

// ParseReleaseDate parses a release date string honoring the precision
// Spotify reported for it ("year", "month" or "day"). An unknown
// precision falls back to day precision. Times are UTC midnight of the
// first day covered by the precision.
func ParseReleaseDate(date, precision string) (time.Time, error) {
	layout := "2006-01-02"
	switch precision {
	case "year":
		layout = "2006"
	case "month":
		layout = "2006-01"
	}

	t, err := time.Parse(layout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("spotify: invalid release date %q: %w", date, err)
	}
	return t, nil
}
