package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateOverseerr(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateRecommendations(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		// An absent key disables canonical ID resolution rather than
		// failing the run; availability falls back to title matching.
		return nil
	}
	if c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must be set when tmdb.api_key is set")
	}
	return nil
}

func (c *Config) validateOverseerr() error {
	if !c.Overseerr.Enabled {
		return nil
	}
	if c.Overseerr.URL == "" {
		return errors.New("overseerr.url must be set when overseerr.enabled is true")
	}
	if c.Overseerr.APIKey == "" {
		return errors.New("overseerr.api_key must be set when overseerr.enabled is true")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}
	if c.History.DBPath == "" {
		return errors.New("history.db_path must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateRecommendations() error {
	switch c.Recommendations.Strategy {
	case "bulk", "targeted":
	default:
		return fmt.Errorf("recommendations.strategy must be \"bulk\" or \"targeted\", got %q", c.Recommendations.Strategy)
	}
	if c.Recommendations.Workers > 64 {
		return errors.New("recommendations.workers must be 64 or fewer")
	}
	return nil
}
