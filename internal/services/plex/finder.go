package plex

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Finder supports targeted existence queries against one library section.
type Finder interface {
	FindByCanonicalID(ctx context.Context, sectionKey string, tmdbID int64) (bool, error)
	FindByTitle(ctx context.Context, sectionKey, title string) ([]Item, error)
}

var _ Finder = (*Client)(nil)

// FindByCanonicalID reports whether a section contains an item tagged with
// the given TMDB identifier. Plex exposes GUID filtering on the section
// listing endpoint, so this is a single request.
func (c *Client) FindByCanonicalID(ctx context.Context, sectionKey string, tmdbID int64) (bool, error) {
	if strings.TrimSpace(sectionKey) == "" {
		return false, errors.New("section key required")
	}
	if tmdbID <= 0 {
		return false, errors.New("tmdb id must be positive")
	}
	params := url.Values{}
	params.Set("guid", fmt.Sprintf("tmdb://%d", tmdbID))
	params.Set("includeGuids", "1")
	var container itemsContainer
	path := fmt.Sprintf("/library/sections/%s/all", sectionKey)
	if err := c.get(ctx, path, params, &container); err != nil {
		return false, err
	}
	// The guid filter can be loose on some server versions; confirm the ID.
	for _, item := range container.MediaContainer.Metadata {
		if item.CanonicalID() == tmdbID {
			return true, nil
		}
	}
	return false, nil
}

// FindByTitle lists section items whose title matches the query. Plex title
// filtering is approximate, so callers must verify matches themselves.
func (c *Client) FindByTitle(ctx context.Context, sectionKey, title string) ([]Item, error) {
	if strings.TrimSpace(sectionKey) == "" {
		return nil, errors.New("section key required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title required")
	}
	params := url.Values{}
	params.Set("title", title)
	params.Set("includeGuids", "1")
	var container itemsContainer
	path := fmt.Sprintf("/library/sections/%s/all", sectionKey)
	if err := c.get(ctx, path, params, &container); err != nil {
		return nil, err
	}
	return container.MediaContainer.Metadata, nil
}
