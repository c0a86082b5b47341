// Package spotify provides a client library for the Spotify Web API.
//
// # Overview
//
// This package implements a Go client for the parts of the Spotify Web
// API that matter when treating shows as podcast feeds: server-to-server
// authentication and show/episode lookups. It provides a clean, type-safe
// API with context support, proper error handling, and retry logic.
//
// # Installation
//
//	go get github.com/jfmyers9/spotcast/pkg/spotify
//
// # Quick Start
//
// First, create a client with your application credentials:
//
//	import "github.com/jfmyers9/spotcast/pkg/spotify"
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Authentication
//
// Spotify server-to-server access uses the OAuth2 client-credentials
// grant. The client handles it automatically: the first API call
// exchanges the client ID and secret for a bearer token, and the token
// is reused until shortly before its stated expiry. No user interaction
// is involved.
//
// A TokenStore can be supplied to persist tokens across process
// restarts:
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	    TokenStore:   store, // implements spotify.TokenStore
//	})
//
// The token can also be requested explicitly, e.g. to verify
// credentials:
//
//	token, err := client.Auth().Token(ctx)
//
// # Shows and Episodes
//
//	show, err := client.Shows().Get(ctx, showID, "US")
//
//	// One page, newest first, at most 50 episodes
//	page, err := client.Shows().Episodes(ctx, showID, spotify.EpisodeParams{
//	    Market: "US",
//	    Limit:  20,
//	})
//
//	// Paginate until 200 episodes are collected or the listing ends
//	episodes, err := client.Shows().AllEpisodes(ctx, showID, "US", 200)
//
// # Error Handling
//
// The package provides structured errors with retry information:
//
//	show, err := client.Shows().Get(ctx, showID, "US")
//	if err != nil {
//	    var apiErr *spotify.Error
//	    if errors.As(err, &apiErr) {
//	        if apiErr.Temporary() {
//	            // Retry the request
//	        }
//	    }
//	}
//
// Failures at the accounts service are reported as *AuthError with the
// OAuth2 error code.
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and timeouts:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	show, err := client.Shows().Get(ctx, showID, "US")
//
// # Configuration
//
// The client can be configured with custom HTTP clients, base URLs (for
// testing), and optional loggers:
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	    HTTPClient:   &http.Client{Timeout: 30 * time.Second},
//	    Logger:       myLogger, // Implements spotify.Logger interface
//	})
//
// # API Coverage
//
// Currently implemented:
//   - Authentication (client-credentials grant)
//   - Shows (get show, list episodes, paginated listing)
//
// # Spotify API Documentation
//
// For more information about the Spotify Web API:
// https://developer.spotify.com/documentation/web-api
package spotify
