// Package cache persists the Spotify access token and per-show metadata
// in a local JSON file so feed refreshes don't re-authenticate or re-fetch
// show info on every cycle.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jfmyers9/spotcast/pkg/spotify"
)

// ShowInfo is the cached subset of a show's metadata.
type ShowInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url,omitempty"`
	Link         string `json:"link,omitempty"`
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// persistedToken is the JSON representation of the cached access token.
type persistedToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope,omitempty"`
	ExpiresAt   int64  `json:"expires_at"` // unix seconds
}

// cacheData is the on-disk layout of the cache file.
type cacheData struct {
	Token *persistedToken      `json:"token,omitempty"`
	Shows map[string]*ShowInfo `json:"shows"`
}

// Cache manages the cache file with thread-safe access and persistence.
//
// It implements spotify.TokenStore.
type Cache struct {
	mu       sync.RWMutex
	data     cacheData
	filePath string
}

// New creates a Cache backed by the given file, restoring its contents
// if the file exists. A missing or unreadable file is not an error; the
// cache simply starts empty.
func New(filePath string) (*Cache, error) {
	c := &Cache{
		filePath: filePath,
		data:     cacheData{Shows: make(map[string]*ShowInfo)},
	}

	if filePath != "" {
		if err := c.restore(); err != nil && !os.IsNotExist(err) {
			// Unreadable or corrupt cache files are discarded; the
			// next persist overwrites them.
			c.data = cacheData{Shows: make(map[string]*ShowInfo)}
		}
	}

	return c, nil
}

// Token returns the cached access token, or nil if none is stored.
func (c *Cache) Token() (*spotify.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data.Token == nil {
		return nil, nil
	}

	return &spotify.Token{
		AccessToken: c.data.Token.AccessToken,
		TokenType:   c.data.Token.TokenType,
		Scope:       c.data.Token.Scope,
		ExpiresAt:   time.Unix(c.data.Token.ExpiresAt, 0),
	}, nil
}

// SaveToken replaces the cached access token.
func (c *Cache) SaveToken(token *spotify.Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data.Token = &persistedToken{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Scope:       token.Scope,
		ExpiresAt:   token.ExpiresAt.Unix(),
	}

	return c.persist()
}

// Show returns the cached metadata for a show, if present.
func (c *Cache) Show(showID string) (*ShowInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.data.Shows[showID]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent external modification
	copied := *info
	return &copied, true
}

// SetShow stores metadata for a show.
func (c *Cache) SetShow(showID string, info ShowInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data.Shows[showID] = &info
	return c.persist()
}

// DeleteShow removes a show's cached metadata, e.g. when the host
// deletes the podcast.
func (c *Cache) DeleteShow(showID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data.Shows[showID]; !ok {
		return nil
	}

	delete(c.data.Shows, showID)
	return c.persist()
}

// persist saves the cache to disk
// Must be called with lock held
func (c *Cache) persist() error {
	if c.filePath == "" {
		return nil // No persistence configured
	}

	data, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Write atomically via temp file + rename
	tmpPath := c.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, c.filePath)
}

// restore loads the cache from disk
func (c *Cache) restore() error {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return err
	}

	var cd cacheData
	if err := json.Unmarshal(data, &cd); err != nil {
		return err
	}
	if cd.Shows == nil {
		cd.Shows = make(map[string]*ShowInfo)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = cd

	return nil
}
