package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizePlex()
	c.normalizeOverseerr()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeRecommendations()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.ResolverCache, err = ExpandPath(c.Paths.ResolverCache); err != nil {
		return fmt.Errorf("paths.resolver_cache: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
}

func (c *Config) normalizePlex() {
	c.Plex.URL = strings.TrimRight(strings.TrimSpace(c.Plex.URL), "/")
	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
}

func (c *Config) normalizeOverseerr() {
	url := strings.TrimRight(strings.TrimSpace(c.Overseerr.URL), "/")
	// Overseerr exposes its REST surface under /api/v1; accept bare hosts.
	if url != "" && !strings.Contains(url, "/api/") {
		url += "/api/v1"
	}
	c.Overseerr.URL = url
	c.Overseerr.APIKey = strings.TrimSpace(c.Overseerr.APIKey)
}

func (c *Config) normalizeHistory() error {
	var err error
	if c.History.DBPath, err = ExpandPath(c.History.DBPath); err != nil {
		return fmt.Errorf("history.db_path: %w", err)
	}
	sections := make([]string, 0, len(c.History.LibrarySections))
	for _, section := range c.History.LibrarySections {
		if section = strings.TrimSpace(section); section != "" {
			sections = append(sections, section)
		}
	}
	c.History.LibrarySections = sections
	return nil
}

func (c *Config) normalizeRecommendations() {
	r := &c.Recommendations
	if r.TargetCount <= 0 {
		r.TargetCount = defaultTargetCount
	}
	if r.DirectorCap <= 0 {
		r.DirectorCap = defaultDirectorCap
	}
	if r.GenreCap <= 0 {
		r.GenreCap = defaultGenreCap
	}
	if r.Workers <= 0 {
		r.Workers = defaultWorkers
	}
	if r.RequestTimeout <= 0 {
		r.RequestTimeout = defaultRequestTimeout
	}
	r.Strategy = strings.ToLower(strings.TrimSpace(r.Strategy))
	if r.Strategy == "" {
		r.Strategy = defaultStrategy
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
