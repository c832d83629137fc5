package overseerr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelmatch/internal/media"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(server.URL, "test-key", server.Client())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, server
}

func TestSearchFiltersPersonResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		w.Write([]byte(`{"results":[
			{"id":603,"mediaType":"movie","title":"The Matrix"},
			{"id":500,"mediaType":"person","name":"Keanu Reeves"},
			{"id":95396,"mediaType":"tv","name":"Severance"}
		]}`))
	})

	results, err := client.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].TmdbID() != 603 || results[1].TmdbID() != 95396 {
		t.Errorf("unexpected ids %d, %d", results[0].TmdbID(), results[1].TmdbID())
	}
}

func TestMediaAvailableSignals(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"plex url", `{"mediaInfo":{"plexUrl":"https://app.plex.tv/item/1"}}`, true},
		{"available status", `{"mediaInfo":{"status":4}}`, true},
		{"download complete", `{"mediaInfo":{"downloadStatus":1}}`, true},
		{"pending", `{"mediaInfo":{"status":2}}`, false},
		{"no media info", `{}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/movie/603" {
					t.Errorf("path = %q, want /movie/603", r.URL.Path)
				}
				w.Write([]byte(tt.body))
			})
			got, err := client.MediaAvailable(context.Background(), media.KindMovie, 603)
			if err != nil {
				t.Fatalf("MediaAvailable: %v", err)
			}
			if got != tt.want {
				t.Errorf("available = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMediaAvailableNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	got, err := client.MediaAvailable(context.Background(), media.KindShow, 99999)
	if err != nil {
		t.Fatalf("MediaAvailable: %v", err)
	}
	if got {
		t.Error("expected unknown title to be unavailable")
	}
}

func TestMediaAvailableUsesTVPath(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"mediaInfo":{"status":4}}`))
	})
	if _, err := client.MediaAvailable(context.Background(), media.KindShow, 95396); err != nil {
		t.Fatalf("MediaAvailable: %v", err)
	}
	if gotPath != "/tv/95396" {
		t.Errorf("path = %q, want /tv/95396", gotPath)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("  ", "key", nil); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
