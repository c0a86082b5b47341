package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AuthService provides authentication operations against the Spotify
// accounts service.
//
// Spotify server-to-server access uses the OAuth2 client-credentials
// grant: the client ID and secret are exchanged for a short-lived bearer
// token, which is reused until shortly before its stated expiry.
type AuthService struct {
	client *Client

	// In-memory token for the lifetime of the process. The configured
	// TokenStore, if any, carries the token across runs.
	token *Token

	// invalidated forces the next Token call to request a fresh token.
	// A token the API rejected may still look valid by its stored
	// expiry, so the store cannot be trusted until the refresh succeeds.
	invalidated bool
}

// tokenResponse is the JSON body of a successful token request.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// authErrorResponse is the OAuth2 error body of a failed token request.
type authErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// Token returns a token usable for API requests, requesting a new one
// from the accounts service only when no cached token is still valid.
//
// The lookup order is: in-memory token, the configured TokenStore, and
// finally the accounts service. A freshly requested token is written
// back to the store.
func (a *AuthService) Token(ctx context.Context) (*Token, error) {
	if a.invalidated {
		return a.refresh(ctx)
	}

	if a.token.Valid() {
		return a.token, nil
	}

	if a.client.store != nil {
		stored, err := a.client.store.Token()
		if err != nil {
			a.client.logDebugf("spotify: token store read failed: %v", err)
		} else if stored.Valid() {
			a.token = stored
			return stored, nil
		}
	}

	return a.refresh(ctx)
}

// Invalidate discards the current token so the next request fetches a
// fresh one from the accounts service. Used when the API rejects a
// token before its stated expiry; the copy held by the TokenStore is
// equally rejected, so it is bypassed too.
func (a *AuthService) Invalidate() {
	a.token = nil
	a.invalidated = true
}

// refresh requests a new token from the accounts service, bypassing
// any cached token.
func (a *AuthService) refresh(ctx context.Context) (*Token, error) {
	a.client.logDebugf("spotify: refreshing access token")

	form := "grant_type=client_credentials"
	req, err := http.NewRequestWithContext(ctx, "POST", a.client.accountsURL+"/api/token", strings.NewReader(form))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(a.client.clientID + ":" + a.client.clientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var authErr authErrorResponse
		if err := json.Unmarshal(body, &authErr); err == nil && authErr.Error != "" {
			return nil, &AuthError{Code: authErr.Error, Description: authErr.Description}
		}
		return nil, fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, ErrNoToken
	}

	token := &Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
		Scope:       tr.Scope,
		ExpiresAt:   time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}

	a.token = token
	a.invalidated = false
	if a.client.store != nil {
		if err := a.client.store.SaveToken(token); err != nil {
			a.client.logDebugf("spotify: token store write failed: %v", err)
		}
	}

	a.client.logDebugf("spotify: refreshed access token, expires at %s", token.ExpiresAt.Format(time.RFC3339))
	return token, nil
}
