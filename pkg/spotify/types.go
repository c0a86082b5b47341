package spotify

import (
	"time"
)

// expiryLeeway is subtracted from a token's lifetime so a token that is
// about to expire is not handed to a request that would outlive it.
const expiryLeeway = 30 * time.Second

// Token represents an access token from the client-credentials grant.
type Token struct {
	AccessToken string    // The bearer token value
	TokenType   string    // Token type, normally "Bearer"
	Scope       string    // Granted scopes (empty for client credentials)
	ExpiresAt   time.Time // Absolute expiry time
}

// Valid reports whether the token can still be used for requests.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return time.Now().Before(t.ExpiresAt.Add(-expiryLeeway))
}

// Image represents a cover image in one of the sizes Spotify serves.
type Image struct {
	URL    string
	Width  int
	Height int
}

// Show represents a Spotify show (podcast).
type Show struct {
	ID            string
	Name          string
	Description   string
	Publisher     string
	ExternalURL   string // open.spotify.com link
	TotalEpisodes int
	Images        []Image

	// Validator headers from the HTTP response, when the API sent them.
	ETag         string
	LastModified string
}

// CoverURL returns the show's cover image URL.
//
// Spotify returns images largest first; the middle size is a reasonable
// cover for feed readers, falling back to whatever is available.
func (s *Show) CoverURL() string {
	switch {
	case len(s.Images) >= 2:
		return s.Images[1].URL
	case len(s.Images) == 1:
		return s.Images[0].URL
	default:
		return ""
	}
}

// Episode represents a single episode of a show.
type Episode struct {
	ID                   string
	Name                 string
	Description          string
	ExternalURL          string // open.spotify.com link
	Duration             time.Duration
	ReleaseDate          time.Time
	ReleaseDatePrecision string // "year", "month" or "day"
	Explicit             bool
	Languages            []string
}

// EpisodePage is one page of a show's episode listing.
type EpisodePage struct {
	Episodes []Episode
	Limit    int
	Offset   int
	Total    int
	Next     string // URL of the next page, empty on the last page
}
