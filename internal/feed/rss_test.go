package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestFeed_RSS(t *testing.T) {
	h, _, _ := newTestHandler(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shows/show-1":
			fmt.Fprint(w, `{
				"id": "show-1",
				"name": "Test Show",
				"description": "A show about testing",
				"external_urls": {"spotify": "https://open.spotify.com/show/show-1"},
				"images": [{"url": "https://i.scdn.co/image/cover", "width": 300, "height": 300}]
			}`)
		case "/shows/show-1/episodes":
			fmt.Fprint(w, `{
				"items": [{
					"id": "ep-1",
					"name": "Episode One",
					"description": "First episode",
					"duration_ms": 60000,
					"release_date": "2026-08-28",
					"release_date_precision": "day",
					"external_urls": {"spotify": "https://open.spotify.com/episode/ep-1"}
				}],
				"limit": 50, "offset": 0, "total": 1, "next": null
			}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	f, err := h.Resolve("https://open.spotify.com/show/show-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rss, err := f.RSS(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"<title>Test Show</title>",
		"A show about testing",
		"<title>Episode One</title>",
		"https://open.spotify.com/episode/ep-1",
		"https://open.spotify.com/show/show-1",
		"https://i.scdn.co/image/cover",
	} {
		if !strings.Contains(rss, want) {
			t.Errorf("expected RSS to contain %q\n%s", want, rss)
		}
	}
}
