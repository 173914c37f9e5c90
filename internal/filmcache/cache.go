package filmcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"greenlight/internal/fileutil"
	"greenlight/internal/logging"
	"greenlight/internal/titles"
)

// Version identifies the cache document format.
const Version = 1

// Confidence labels how a verdict was reached.
const (
	// ConfidenceHigh marks verdicts from an exact or containment title match,
	// or from a search that returned no candidates at all.
	ConfidenceHigh = "high"
	// ConfidenceMedium marks verdicts where candidates existed but none
	// matched, or the match relied on fuzzy similarity alone.
	ConfidenceMedium = "medium"
)

// Entry is one cached verdict.
type Entry struct {
	Title        string    `json:"title"`
	IsProduced   bool      `json:"is_produced"`
	TMDBID       int64     `json:"tmdb_id,omitempty"`
	MatchedTitle string    `json:"matched_title,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	Status       string    `json:"status,omitempty"`
	Confidence   string    `json:"confidence,omitempty"`
	Note         string    `json:"note,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
}

// document is the on-disk cache shape.
type document struct {
	Version     int              `json:"version"`
	LastUpdated time.Time        `json:"last_updated"`
	Entries     map[string]Entry `json:"entries"`
}

// Cache provides thread-safe access to the verdict cache.
type Cache struct {
	path   string
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache creates a cache instance. If path is empty, all operations are
// no-ops. The cache file is created lazily on first Put.
func NewCache(path string, ttlDays int, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "filmcache")

	c := &Cache{
		path:    strings.TrimSpace(path),
		ttl:     time.Duration(ttlDays) * 24 * time.Hour,
		logger:  logger,
		entries: make(map[string]Entry),
	}
	if c.path == "" {
		return c
	}

	doc, err := readDocument(c.path)
	if err != nil {
		logger.Warn("failed to load verdict cache",
			logging.String(logging.FieldEventType, "filmcache_load_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache will start empty"),
			logging.String(logging.FieldImpact, "previously cached titles will be re-checked"))
		return c
	}
	c.entries = doc.Entries
	logger.Debug("loaded verdict cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))
	return c
}

// Get returns the fresh cache entry for title if one exists. Expired entries
// are reported as misses.
func (c *Cache) Get(title string) (Entry, bool) {
	key := titles.Normalize(title)
	if key == "" || c.path == "" {
		return Entry{}, false
	}

	c.mu.RLock()
	entry, found := c.entries[key]
	c.mu.RUnlock()
	if !found {
		return Entry{}, false
	}
	if c.expired(entry) {
		c.logger.Debug("cache entry expired",
			logging.String("title", title),
			logging.Duration("age", time.Since(entry.CheckedAt)))
		return Entry{}, false
	}
	return entry, true
}

// Put stores a verdict and persists it. The on-disk document is re-read
// under a file lock and merged before writing, so entries written by other
// processes since startup survive.
func (c *Cache) Put(entry Entry) error {
	key := titles.Normalize(entry.Title)
	if key == "" {
		return errors.New("cache entry title cannot be empty")
	}
	if c.path == "" {
		return nil
	}
	if entry.CheckedAt.IsZero() {
		entry.CheckedAt = time.Now().UTC()
	}

	return c.withFileLock(func() error {
		return c.mergeAndSave(func(entries map[string]Entry) {
			entries[key] = entry
		})
	})
}

// Remove deletes the entry for title and persists the change.
func (c *Cache) Remove(title string) error {
	key := titles.Normalize(title)
	if key == "" {
		return errors.New("cache entry title cannot be empty")
	}
	if c.path == "" {
		return nil
	}

	c.mu.RLock()
	_, exists := c.entries[key]
	c.mu.RUnlock()
	if !exists {
		return fmt.Errorf("title %q not found in cache", title)
	}

	return c.withFileLock(func() error {
		return c.mergeAndSave(func(entries map[string]Entry) {
			delete(entries, key)
		})
	})
}

// Prune drops expired entries and persists the result. It returns the
// number of entries removed.
func (c *Cache) Prune() (int, error) {
	if c.path == "" {
		return 0, nil
	}

	removed := 0
	err := c.withFileLock(func() error {
		return c.mergeAndSave(func(entries map[string]Entry) {
			for key, entry := range entries {
				if c.expired(entry) {
					delete(entries, key)
					removed++
				}
			}
		})
	})
	return removed, err
}

// Clear removes all entries and persists the empty cache.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}
	return c.withFileLock(func() error {
		return c.mergeAndSave(func(entries map[string]Entry) {
			for key := range entries {
				delete(entries, key)
			}
		})
	})
}

// List returns all entries sorted by CheckedAt descending, including
// expired ones so operators can see what a prune would drop.
func (c *Cache) List() []Entry {
	if c.path == "" {
		return nil
	}

	c.mu.RLock()
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	c.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CheckedAt.After(entries[j].CheckedAt)
	})
	return entries
}

// Len returns the number of entries, expired included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Expired reports whether entry is older than the cache TTL.
func (c *Cache) Expired(entry Entry) bool {
	return c.expired(entry)
}

func (c *Cache) expired(entry Entry) bool {
	if c.ttl <= 0 {
		return false
	}
	return time.Since(entry.CheckedAt) > c.ttl
}

func (c *Cache) withFileLock(fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	lock := flock.New(c.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	defer lock.Unlock()
	return fn()
}

// mergeAndSave re-reads the on-disk document, applies mutate to its entries,
// and writes the result atomically. The in-memory view is replaced by the
// merged state. Callers must hold the file lock.
func (c *Cache) mergeAndSave(mutate func(map[string]Entry)) error {
	doc, err := readDocument(c.path)
	if err != nil {
		c.logger.Warn("cache file unreadable, rewriting",
			logging.Error(err),
			logging.String("path", c.path))
		doc = document{Version: Version, Entries: make(map[string]Entry)}
	}

	mutate(doc.Entries)

	doc.Version = Version
	doc.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	c.mu.Lock()
	c.entries = doc.Entries
	c.mu.Unlock()
	return nil
}

func readDocument(path string) (document, error) {
	doc := document{Version: Version, Entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}

	var parsed document
	if err := json.Unmarshal(data, &parsed); err != nil {
		return doc, fmt.Errorf("parse cache file: %w", err)
	}
	if parsed.Entries == nil {
		parsed.Entries = make(map[string]Entry)
	}
	if parsed.Version == 0 {
		parsed.Version = Version
	}
	return parsed, nil
}
