package overseerr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelmatch/internal/media"
)

// HTTPDoer describes the HTTP client used by the Overseerr service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SearchResult is a single entry from the Overseerr search endpoint.
type SearchResult struct {
	ID         int64   `json:"id"`
	MediaType  string  `json:"mediaType"`
	Title      string  `json:"title"`
	Name       string  `json:"name"`
	Popularity float64 `json:"popularity"`
}

// TmdbID returns the result's TMDB identifier. Overseerr reports search
// results keyed by TMDB ID directly.
func (r SearchResult) TmdbID() int64 {
	return r.ID
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

type mediaInfo struct {
	Status         int    `json:"status"`
	DownloadStatus int    `json:"downloadStatus"`
	PlexURL        string `json:"plexUrl"`
}

type mediaResponse struct {
	MediaInfo *mediaInfo `json:"mediaInfo"`
}

// statusAvailable is the Overseerr media status meaning fully available.
const statusAvailable = 4

// Client talks to an Overseerr instance.
type Client struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// Service defines the Overseerr operations consumed by the resolver.
type Service interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
	MediaAvailable(ctx context.Context, kind media.Kind, tmdbID int64) (bool, error)
}

var _ Service = (*Client)(nil)

// New creates an Overseerr client. The base URL should already include the
// /api/v1 prefix.
func New(baseURL, apiKey string, client HTTPDoer) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("overseerr base url required")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
	}, nil
}

// Search queries Overseerr for titles matching the query. Results with media
// types other than movie or tv (for example person) are filtered out.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint := fmt.Sprintf("%s/search?query=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build overseerr search request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute overseerr search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overseerr search returned %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode overseerr search response: %w", err)
	}
	filtered := payload.Results[:0]
	for _, result := range payload.Results {
		if result.MediaType == "movie" || result.MediaType == "tv" {
			filtered = append(filtered, result)
		}
	}
	return filtered, nil
}

// MediaAvailable reports whether Overseerr considers the title available on
// the linked media server. A title counts as available when its media info
// carries a Plex deep link, an available status, or a completed download.
// Unknown titles return false without error.
func (c *Client) MediaAvailable(ctx context.Context, kind media.Kind, tmdbID int64) (bool, error) {
	if tmdbID <= 0 {
		return false, errors.New("tmdb id must be positive")
	}
	endpoint := fmt.Sprintf("%s/%s/%d", c.baseURL, kind.OverseerrMediaType(), tmdbID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build overseerr media request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("fetch overseerr media info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("overseerr media lookup returned %d", resp.StatusCode)
	}

	var payload mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("decode overseerr media response: %w", err)
	}
	info := payload.MediaInfo
	if info == nil {
		return false, nil
	}
	if strings.TrimSpace(info.PlexURL) != "" {
		return true, nil
	}
	if info.Status == statusAvailable {
		return true, nil
	}
	if info.DownloadStatus == 1 {
		return true, nil
	}
	return false, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
}
