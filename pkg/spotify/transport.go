package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// errorEnvelope is the Web API error body {"error": {"status", "message"}}.
type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// get makes an authenticated GET request to the Web API with retry logic.
//
// It handles:
// - Bearer token acquisition and one re-authentication on 401
// - Response parsing (JSON error envelope)
// - Error handling and retry logic with exponential backoff
// - Rate limiting (429 with Retry-After)
// - Context cancellation
//
// The response headers are returned alongside the body so callers can
// capture cache validators (ETag, Last-Modified).
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, http.Header, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	backoff := 1 * time.Second
	maxRetries := 3
	reauthed := false

	for i := 0; i < maxRetries; i++ {
		token, err := c.auth.Token(ctx)
		if err != nil {
			return nil, nil, err
		}

		c.logDebugf("spotify: GET %s (attempt %d/%d)", path, i+1, maxRetries)

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		req.Header.Set("User-Agent", "spotcast/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if shouldRetryNetworkError(err) && i < maxRetries-1 {
				c.logDebugf("spotify: network error, retrying: %v", err)
				if !sleep(ctx, backoff) {
					return nil, nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, nil, fmt.Errorf("http request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read response: %w", err)
		}

		// An expired or revoked token gets one transparent re-auth.
		if resp.StatusCode == http.StatusUnauthorized && !reauthed {
			c.logDebugf("spotify: token rejected, re-authenticating")
			c.auth.Invalidate()
			reauthed = true
			i--
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = apiError(resp.StatusCode, body)
			if i < maxRetries-1 {
				wait := retryAfter(resp.Header, backoff)
				c.logDebugf("spotify: rate limited, retrying in %s", wait)
				if !sleep(ctx, wait) {
					return nil, nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, nil, lastErr
		}

		if resp.StatusCode >= 500 {
			lastErr = apiError(resp.StatusCode, body)
			if i < maxRetries-1 {
				c.logDebugf("spotify: server error, retrying: %v", lastErr)
				if !sleep(ctx, backoff) {
					return nil, nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, nil, lastErr
		}

		if resp.StatusCode != http.StatusOK {
			return nil, nil, apiError(resp.StatusCode, body)
		}

		// Success
		c.logDebugf("spotify: GET %s succeeded", path)
		return body, resp.Header, nil
	}

	return nil, nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// apiError builds a typed *Error from an error response body, falling
// back to the HTTP status when the envelope cannot be parsed.
func apiError(status int, body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &Error{Status: envelope.Error.Status, Message: envelope.Error.Message}
	}
	return &Error{Status: status, Message: http.StatusText(status)}
}

// retryAfter returns the wait suggested by a Retry-After header, or the
// fallback when the header is absent or unparseable. The wait is capped
// at 30 seconds like the backoff itself.
func retryAfter(h http.Header, fallback time.Duration) time.Duration {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return fallback
	}
	wait := time.Duration(secs) * time.Second
	if wait > 30*time.Second {
		return 30 * time.Second
	}
	return wait
}

// shouldRetryNetworkError checks if a network error is retryable.
func shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors
	if _, ok := err.(net.Error); ok {
		return true
	}

	// Check for URL errors (which may contain network errors)
	if urlErr, ok := err.(*url.Error); ok {
		if _, ok := urlErr.Err.(net.Error); ok {
			return true
		}
	}

	return false
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(duration):
		return true
	}
}

// nextBackoff calculates the next backoff duration with exponential increase.
// Maximum backoff is capped at 30 seconds.
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > 30*time.Second {
		return 30 * time.Second
	}
	return next
}
