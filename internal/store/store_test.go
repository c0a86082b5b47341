package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "subscriptions.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStore_AddListRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	subs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("expected empty store, got %d subscriptions", len(subs))
	}

	sub := Subscription{
		ShowID: "show-1",
		URL:    "https://open.spotify.com/show/show-1",
		Title:  "Test Show",
	}
	if err := s.Add(ctx, sub); err != nil {
		t.Fatalf("failed to add subscription: %v", err)
	}

	// Adding twice is an error
	err = s.Add(ctx, sub)
	if err == nil {
		t.Fatal("expected error for duplicate subscription, got nil")
	}
	if !strings.Contains(err.Error(), "already subscribed") {
		t.Errorf("expected 'already subscribed' error, got %v", err)
	}

	if err := s.Add(ctx, Subscription{ShowID: "show-2", URL: "https://open.spotify.com/show/show-2"}); err != nil {
		t.Fatalf("failed to add second subscription: %v", err)
	}

	subs, err = s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subs))
	}
	if subs[0].ShowID != "show-1" || subs[1].ShowID != "show-2" {
		t.Errorf("unexpected order: %s, %s", subs[0].ShowID, subs[1].ShowID)
	}
	if subs[0].Title != "Test Show" {
		t.Errorf("expected title Test Show, got %q", subs[0].Title)
	}
	if subs[0].AddedAt.IsZero() {
		t.Error("expected added_at to be set")
	}

	if err := s.Remove(ctx, "show-1"); err != nil {
		t.Fatalf("failed to remove subscription: %v", err)
	}

	// Removing again is an error
	err = s.Remove(ctx, "show-1")
	if err == nil {
		t.Fatal("expected error for unknown subscription, got nil")
	}
	if !strings.Contains(err.Error(), "not subscribed") {
		t.Errorf("expected 'not subscribed' error, got %v", err)
	}

	subs, err = s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 1 || subs[0].ShowID != "show-2" {
		t.Errorf("expected only show-2 to remain, got %v", subs)
	}
}

func TestStore_AddPersistsAddedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sub := Subscription{
		ShowID:  "show-1",
		URL:     "https://open.spotify.com/show/show-1",
		AddedAt: addedAt,
	}
	if err := s.Add(ctx, sub); err != nil {
		t.Fatalf("failed to add subscription: %v", err)
	}

	// A zero AddedAt falls back to the insertion time
	if err := s.Add(ctx, Subscription{ShowID: "show-2", URL: "https://open.spotify.com/show/show-2"}); err != nil {
		t.Fatalf("failed to add subscription: %v", err)
	}

	subs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subs))
	}

	if !subs[0].AddedAt.Equal(addedAt) {
		t.Errorf("expected added_at %s, got %s", addedAt, subs[0].AddedAt)
	}
	if subs[1].AddedAt.IsZero() {
		t.Error("expected defaulted added_at, got zero time")
	}
	// List orders oldest first, so the backdated subscription leads
	if subs[0].ShowID != "show-1" || subs[1].ShowID != "show-2" {
		t.Errorf("expected order [show-1 show-2], got [%s %s]", subs[0].ShowID, subs[1].ShowID)
	}
}

func TestStore_SetTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, Subscription{ShowID: "show-1", URL: "https://open.spotify.com/show/show-1"}); err != nil {
		t.Fatalf("failed to add subscription: %v", err)
	}

	if err := s.SetTitle(ctx, "show-1", "Resolved Title"); err != nil {
		t.Fatalf("failed to set title: %v", err)
	}

	subs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subs[0].Title != "Resolved Title" {
		t.Errorf("expected Resolved Title, got %q", subs[0].Title)
	}
}

func TestStore_SeenEpisodes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, Subscription{ShowID: "show-1", URL: "https://open.spotify.com/show/show-1"}); err != nil {
		t.Fatalf("failed to add subscription: %v", err)
	}

	guids, err := s.SeenGUIDs(ctx, "show-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(guids) != 0 {
		t.Fatalf("expected no seen episodes, got %v", guids)
	}

	if err := s.MarkSeen(ctx, "show-1", []string{"ep-1", "ep-2"}); err != nil {
		t.Fatalf("failed to mark seen: %v", err)
	}

	// Marking the same GUID again is a no-op
	if err := s.MarkSeen(ctx, "show-1", []string{"ep-2", "ep-3"}); err != nil {
		t.Fatalf("failed to mark seen: %v", err)
	}

	// Empty batch is a no-op
	if err := s.MarkSeen(ctx, "show-1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	guids, err = s.SeenGUIDs(ctx, "show-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(guids) != 3 {
		t.Errorf("expected 3 seen episodes, got %v", guids)
	}
}

func TestStore_RemoveDropsSeenEpisodes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, Subscription{ShowID: "show-1", URL: "https://open.spotify.com/show/show-1"}); err != nil {
		t.Fatalf("failed to add subscription: %v", err)
	}
	if err := s.MarkSeen(ctx, "show-1", []string{"ep-1"}); err != nil {
		t.Fatalf("failed to mark seen: %v", err)
	}

	if err := s.Remove(ctx, "show-1"); err != nil {
		t.Fatalf("failed to remove subscription: %v", err)
	}

	guids, err := s.SeenGUIDs(ctx, "show-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(guids) != 0 {
		t.Errorf("expected seen episodes to cascade on remove, got %v", guids)
	}
}
