package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "k"
`)
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config to exist")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.TMDB.BaseURL != defaultTMDBBaseURL {
		t.Errorf("tmdb base url = %q, want default", cfg.TMDB.BaseURL)
	}
	if cfg.Recommendations.TargetCount != defaultTargetCount {
		t.Errorf("target count = %d, want %d", cfg.Recommendations.TargetCount, defaultTargetCount)
	}
	if cfg.Recommendations.Strategy != "bulk" {
		t.Errorf("strategy = %q, want bulk", cfg.Recommendations.Strategy)
	}
}

func TestLoadTMDBKeyOptional(t *testing.T) {
	path := writeConfig(t, "")
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load without tmdb.api_key: %v", err)
	}
	if cfg.TMDB.APIKey != "" {
		t.Errorf("api key = %q, want empty", cfg.TMDB.APIKey)
	}
}

func TestLoadRejectsBadStrategy(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "k"

[recommendations]
strategy = "psychic"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestLoadOverseerrValidation(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "k"

[overseerr]
enabled = true
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error when overseerr enabled without url")
	}
}

func TestNormalizeOverseerrURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://host:5055", "http://host:5055/api/v1"},
		{"http://host:5055/", "http://host:5055/api/v1"},
		{"http://host:5055/api/v1", "http://host:5055/api/v1"},
		{"", ""},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Overseerr.URL = tt.input
		cfg.normalizeOverseerr()
		if cfg.Overseerr.URL != tt.want {
			t.Errorf("normalizeOverseerr(%q) = %q, want %q", tt.input, cfg.Overseerr.URL, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}
	got, err := ExpandPath("~/x/y")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Errorf("ExpandPath(~/x/y) = %q", got)
	}

	empty, err := ExpandPath("   ")
	if err != nil || empty != "" {
		t.Errorf("ExpandPath(blank) = (%q, %v), want empty", empty, err)
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := writeConfig(t, SampleConfig())
	// The sample has no API key, so Load must fail validation, not parsing.
	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for sample config")
	}
	if strings.Contains(err.Error(), "parse config") {
		t.Errorf("sample config failed to parse: %v", err)
	}
}
