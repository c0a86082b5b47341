// Package spotify provides a client for the Spotify Web API.
//
// This package implements the subset of the Spotify Web API needed to
// treat shows as podcast feeds: client-credentials authentication and
// show/episode lookups. It is designed to be used as a standalone SDK.
//
// Example usage:
//
//	import "github.com/jfmyers9/spotcast/pkg/spotify"
//
//	client := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//
//	show, err := client.Shows().Get(ctx, "4rOoJ6Egrf8K2IrywzwOMk", "US")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(show.Name)
package spotify

import (
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	ClientID     string       // Required: Spotify application client ID
	ClientSecret string       // Required: Spotify application client secret
	HTTPClient   *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL      string       // Optional: Base URL for the Web API (defaults to Spotify, used for testing)
	AccountsURL  string       // Optional: Base URL for the accounts service (defaults to Spotify, used for testing)
	TokenStore   TokenStore   // Optional: Persistent store for access tokens
	Logger       Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// TokenStore persists access tokens between runs.
//
// Token returns the cached token, or nil if none is stored. SaveToken
// replaces the stored token. Implementations are free to drop tokens
// at any time; the client re-authenticates when the store comes up empty.
type TokenStore interface {
	Token() (*Token, error)
	SaveToken(*Token) error
}

// Client is the main entry point for Spotify Web API operations.
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	baseURL      string
	accountsURL  string
	store        TokenStore
	logger       Logger

	auth  *AuthService
	shows *ShowService
}

const (
	// DefaultBaseURL is the default Spotify Web API endpoint.
	DefaultBaseURL = "https://api.spotify.com/v1"

	// DefaultAccountsURL is the default Spotify accounts service endpoint.
	DefaultAccountsURL = "https://accounts.spotify.com"
)

// NewClient creates a new Spotify Web API client.
//
// Returns an error if required configuration (ClientID, ClientSecret) is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("spotify: ClientID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("spotify: ClientSecret is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	accountsURL := cfg.AccountsURL
	if accountsURL == "" {
		accountsURL = DefaultAccountsURL
	}

	c := &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
		baseURL:      baseURL,
		accountsURL:  accountsURL,
		store:        cfg.TokenStore,
		logger:       cfg.Logger,
	}

	c.auth = &AuthService{client: c}
	c.shows = &ShowService{client: c}

	return c, nil
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Shows returns the show service.
func (c *Client) Shows() *ShowService {
	return c.shows
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
