package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"reelmatch/internal/logging"
	"reelmatch/internal/media"
)

// CacheEntry is one persisted resolution outcome. A zero ID records a
// deliberate miss so known-unresolvable titles are not retried.
type CacheEntry struct {
	Key      string    `json:"key"`
	ID       int64     `json:"id"`
	CachedAt time.Time `json:"cached_at"`
}

// Miss reports whether the entry records a resolution miss.
func (e CacheEntry) Miss() bool {
	return e.ID == 0
}

// CacheKey builds the lookup key for a resolution request.
func CacheKey(kind media.Kind, title string, yearHint int) string {
	return kind.String() + "|" + normalizeKeyTitle(title) + "|" + strconv.Itoa(yearHint)
}

func normalizeKeyTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(title))), " ")
}

// Cache stores resolved IDs and misses, optionally persisted to a JSON file.
// With an empty path the cache is memory-only; persistence guards the file
// with an advisory lock so concurrent processes do not clobber each other.
type Cache struct {
	path    string
	logger  *slog.Logger
	lock    *flock.Flock
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

// NewCache creates a resolution cache. An empty path disables persistence;
// lookups and stores still work in memory for the process lifetime.
func NewCache(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "resolvercache")

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]CacheEntry),
	}
	if path == "" {
		return c
	}
	c.lock = flock.New(path + ".lock")

	if err := c.load(); err != nil {
		logger.Warn("failed to load resolver cache",
			logging.String(logging.FieldEventType, "resolver_cache_load_failed"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "previously resolved titles will be searched again"))
	}
	return c
}

// Lookup returns the cached ID for a key. The boolean reports whether the
// key was cached at all; a cached miss returns (0, true).
func (c *Cache) Lookup(key string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, found := c.entries[key]
	return entry.ID, found
}

// Store caches a resolution outcome. ID zero records a miss.
func (c *Cache) Store(key string, id int64) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = CacheEntry{Key: key, ID: id, CachedAt: time.Now()}
}

// Count returns the number of cached outcomes.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops all entries and, when persistence is configured, rewrites the
// cache file.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]CacheEntry)
	if c.path == "" {
		return nil
	}
	return c.save()
}

// Save persists the cache to disk. A no-op without a configured path.
func (c *Cache) Save() error {
	if c.path == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.save()
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []CacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}
	c.entries = make(map[string]CacheEntry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Key) != "" {
			c.entries[entry.Key] = entry
		}
	}
	c.logger.Debug("loaded resolver cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))
	return nil
}

func (c *Cache) save() error {
	entries := make([]CacheEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	if c.lock != nil {
		if err := c.lock.Lock(); err != nil {
			return fmt.Errorf("lock cache file: %w", err)
		}
		defer c.lock.Unlock()
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
