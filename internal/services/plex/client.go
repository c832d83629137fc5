package plex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelmatch/internal/media"
)

const userAgent = "ReelMatch/0.1.0"

// HTTPDoer describes the HTTP client used by the Plex service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Section is a Plex library section.
type Section struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Kind maps the Plex section type to a media kind.
func (s Section) Kind() media.Kind {
	switch s.Type {
	case "movie":
		return media.KindMovie
	case "show":
		return media.KindShow
	default:
		return media.KindUnknown
	}
}

// GUIDRef is one entry from an item's Guid list.
type GUIDRef struct {
	ID string `json:"id"`
}

// Item is a single library item with the metadata needed for matching.
type Item struct {
	RatingKey string    `json:"ratingKey"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	GUID      string    `json:"guid"`
	GUIDs     []GUIDRef `json:"Guid"`
}

// CanonicalID extracts the TMDB identifier from the item's GUID metadata.
// Modern agents record it in the Guid list as tmdb://N; legacy agents embed
// it in the primary guid as com.plexapp.agents.themoviedb://N?lang=xx.
// Items identified only by IMDB or Plex-native GUIDs yield zero.
func (i Item) CanonicalID() int64 {
	for _, ref := range i.GUIDs {
		if id := parseGUID(ref.ID); id > 0 {
			return id
		}
	}
	return parseGUID(i.GUID)
}

func parseGUID(guid string) int64 {
	guid = strings.TrimSpace(guid)
	var rest string
	switch {
	case strings.HasPrefix(guid, "tmdb://"):
		rest = guid[len("tmdb://"):]
	case strings.Contains(guid, "themoviedb://"):
		rest = guid[strings.Index(guid, "themoviedb://")+len("themoviedb://"):]
	default:
		return 0
	}
	if idx := strings.IndexAny(rest, "?/"); idx >= 0 {
		rest = rest[:idx]
	}
	var id int64
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0
		}
		id = id*10 + int64(r-'0')
	}
	return id
}

// Client talks to a Plex Media Server.
type Client struct {
	baseURL string
	token   string
	client  HTTPDoer
}

// Library defines the Plex operations consumed by the availability matcher.
type Library interface {
	Sections(ctx context.Context) ([]Section, error)
	SectionItems(ctx context.Context, sectionKey string) ([]Item, error)
}

var _ Library = (*Client)(nil)

// New creates a Plex client.
func New(baseURL, token string, client HTTPDoer) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("plex base url required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("plex token required")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		token:   strings.TrimSpace(token),
		client:  client,
	}, nil
}

type sectionsContainer struct {
	MediaContainer struct {
		Directory []Section `json:"Directory"`
	} `json:"MediaContainer"`
}

// Sections lists the server's library sections.
func (c *Client) Sections(ctx context.Context) ([]Section, error) {
	var container sectionsContainer
	if err := c.get(ctx, "/library/sections", nil, &container); err != nil {
		return nil, err
	}
	sections := container.MediaContainer.Directory[:0]
	for _, section := range container.MediaContainer.Directory {
		if section.Key == "" {
			continue
		}
		sections = append(sections, section)
	}
	return sections, nil
}

type itemsContainer struct {
	MediaContainer struct {
		Metadata []Item `json:"Metadata"`
	} `json:"MediaContainer"`
}

// SectionItems lists every item in a library section. GUID metadata is
// requested so canonical IDs come back without per-item fetches.
func (c *Client) SectionItems(ctx context.Context, sectionKey string) ([]Item, error) {
	if strings.TrimSpace(sectionKey) == "" {
		return nil, errors.New("section key required")
	}
	params := url.Values{}
	params.Set("includeGuids", "1")
	var container itemsContainer
	path := fmt.Sprintf("/library/sections/%s/all", sectionKey)
	if err := c.get(ctx, path, params, &container); err != nil {
		return nil, err
	}
	return container.MediaContainer.Metadata, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build plex request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("plex %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode plex response: %w", err)
	}
	return nil
}
