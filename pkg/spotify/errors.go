package spotify

import (
	"fmt"
)

// Error represents a Spotify Web API error.
//
// The Web API wraps errors in a {"error": {"status", "message"}} envelope.
// The Error type carries both fields, implements error, and provides
// additional methods for retry logic.
type Error struct {
	Status  int    // HTTP status code reported by the API
	Message string // Error message from Spotify
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("spotify: error %d: %s", e.Status, e.Message)
}

// Is checks if the target error is a Spotify error with the same status.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// Temporary returns true if the error is temporary and the request
// should be retried.
//
// Rate limiting (429) and server errors (5xx) are considered temporary.
// Network errors and timeouts should also be considered temporary but
// are not represented by this type.
func (e *Error) Temporary() bool {
	return e.Status == 429 || e.Status >= 500
}

// AuthError represents an error response from the accounts service.
//
// The token endpoint uses the OAuth2 error envelope
// {"error", "error_description"} rather than the Web API one.
type AuthError struct {
	Code        string // OAuth2 error code, e.g. "invalid_client"
	Description string // Human-readable description, may be empty
}

// Error returns the error message.
func (e *AuthError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("spotify: authentication failed: %s", e.Code)
	}
	return fmt.Sprintf("spotify: authentication failed: %s: %s", e.Code, e.Description)
}

// Predefined errors for common cases.
var (
	// ErrNoToken is returned when the accounts service responds without
	// an access token.
	ErrNoToken = fmt.Errorf("spotify: no access token in response")
)
