package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file locations.
type Paths struct {
	// LogDir receives the reelmatch log file; empty disables file logging.
	LogDir string `toml:"log_dir"`
	// ResolverCache is the JSON file backing the canonical ID cache;
	// empty keeps the cache in memory only.
	ResolverCache string `toml:"resolver_cache"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// Plex contains configuration for the personal media server.
type Plex struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// Overseerr contains configuration for the optional request-fulfillment
// catalog used as a resolver fallback and availability source.
type Overseerr struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
}

// History contains configuration for the Tautulli watch-history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
	// LibrarySections restricts history queries to the listed Plex
	// section IDs; empty means all sections.
	LibrarySections []string `toml:"library_sections"`
}

// Recommendations contains tuning for reconciliation runs.
type Recommendations struct {
	TargetCount int `toml:"target_count"`
	DirectorCap int `toml:"director_cap"`
	GenreCap    int `toml:"genre_cap"`
	// Workers bounds the concurrent per-item network lookups.
	Workers int `toml:"workers"`
	// RequestTimeout bounds each external call, in seconds.
	RequestTimeout int `toml:"request_timeout"`
	// Strategy selects the availability matching mode: "bulk" or "targeted".
	Strategy string `toml:"strategy"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reelmatch.
//
// Configuration sections by subsystem:
//   - Paths: log directory and resolver cache file
//   - TMDB: canonical catalog lookups
//   - Plex: personal library availability checks
//   - Overseerr: optional fallback ID source and availability checks
//   - History: Tautulli watch-history database access
//   - Recommendations: diversity caps, worker pool, matching strategy
//   - Logging: log format and level
type Config struct {
	Paths           Paths           `toml:"paths"`
	TMDB            TMDB            `toml:"tmdb"`
	Plex            Plex            `toml:"plex"`
	Overseerr       Overseerr       `toml:"overseerr"`
	History         History         `toml:"history"`
	Recommendations Recommendations `toml:"recommendations"`
	Logging         Logging         `toml:"logging"`
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/reelmatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is
// the resolved path, the third whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelmatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories configuration points at.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.Paths.ResolverCache != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.ResolverCache))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath resolves a leading ~ against the current user's home directory.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return filepath.Abs(path)
}
