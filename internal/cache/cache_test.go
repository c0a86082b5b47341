package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jfmyers9/spotcast/pkg/spotify"
)

func TestCache_TokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c, err := New(path)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	got, err := c.Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no token in fresh cache, got %+v", got)
	}

	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	token := &spotify.Token{
		AccessToken: "tok-1",
		TokenType:   "Bearer",
		ExpiresAt:   expires,
	}
	if err := c.SaveToken(token); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}

	// Reload from disk via a fresh instance
	c2, err := New(path)
	if err != nil {
		t.Fatalf("failed to reopen cache: %v", err)
	}

	got, err = c2.Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected token after reload, got nil")
	}
	if got.AccessToken != "tok-1" {
		t.Errorf("expected access token tok-1, got %s", got.AccessToken)
	}
	if !got.ExpiresAt.Equal(expires) {
		t.Errorf("expected expiry %s, got %s", expires, got.ExpiresAt)
	}
	if !got.Valid() {
		t.Error("expected reloaded token to be valid")
	}
}

func TestCache_ShowRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c, err := New(path)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	if _, ok := c.Show("show-1"); ok {
		t.Fatal("expected miss for unknown show")
	}

	info := ShowInfo{
		Name:         "Test Show",
		Description:  "A show about testing",
		ImageURL:     "https://i.scdn.co/image/medium",
		Link:         "https://open.spotify.com/show/show-1",
		ETag:         `"abc"`,
		LastModified: "Mon, 02 Jan 2006 15:04:05 GMT",
	}
	if err := c.SetShow("show-1", info); err != nil {
		t.Fatalf("failed to set show: %v", err)
	}

	c2, err := New(path)
	if err != nil {
		t.Fatalf("failed to reopen cache: %v", err)
	}

	got, ok := c2.Show("show-1")
	if !ok {
		t.Fatal("expected hit after reload")
	}
	if *got != info {
		t.Errorf("expected %+v, got %+v", info, *got)
	}

	if err := c2.DeleteShow("show-1"); err != nil {
		t.Fatalf("failed to delete show: %v", err)
	}
	if _, ok := c2.Show("show-1"); ok {
		t.Error("expected miss after delete")
	}

	// Deleting a missing show is a no-op
	if err := c2.DeleteShow("show-1"); err != nil {
		t.Errorf("unexpected error deleting missing show: %v", err)
	}
}

func TestCache_ReturnsCopies(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "cache.json"))
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	if err := c.SetShow("show-1", ShowInfo{Name: "Original"}); err != nil {
		t.Fatalf("failed to set show: %v", err)
	}

	got, _ := c.Show("show-1")
	got.Name = "Mutated"

	again, _ := c.Show("show-1")
	if again.Name != "Original" {
		t.Errorf("cached value was mutated through the returned copy")
	}
}

func TestCache_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	c, err := New(path)
	if err != nil {
		t.Fatalf("expected corrupt cache to be tolerated, got error: %v", err)
	}

	token, err := c.Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != nil {
		t.Errorf("expected empty cache, got token %+v", token)
	}

	// The cache must be writable again after discarding the corrupt file
	if err := c.SaveToken(&spotify.Token{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("failed to save after corrupt load: %v", err)
	}
}

func TestCache_NoPathIsMemoryOnly(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	if err := c.SaveToken(&spotify.Token{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := c.Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == nil || token.AccessToken != "tok" {
		t.Errorf("expected in-memory token, got %+v", token)
	}
}
