package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/eshaffer321/ynab-mcp-go/internal/types"
	"github.com/pkg/errors"
)

// CachedCategory is one cached category summary
type CachedCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

// CategoryCache persists per-budget category lists in a JSON file keyed by
// budget id. Entries never expire; a budget's list is replaced wholesale on
// every refresh.
type CategoryCache struct {
	path   string
	logger types.Logger

	mu      sync.Mutex
	entries map[string][]CachedCategory
}

// NewCategoryCache loads the cache from path. A missing file yields an empty
// cache; malformed content is logged and treated as empty rather than
// crashing the process. The logger may be nil.
func NewCategoryCache(path string, logger types.Logger) *CategoryCache {
	c := &CategoryCache{
		path:    path,
		logger:  logger,
		entries: make(map[string][]CachedCategory),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) && logger != nil {
			logger.Warn("failed to read category cache", "path", path, "error", err)
		}
		return c
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		if logger != nil {
			logger.Warn("category cache is malformed, starting empty", "path", path, "error", err)
		}
		c.entries = make(map[string][]CachedCategory)
	}

	return c
}

// Get returns the cached entries for a budget, or an empty slice if the
// budget was never cached.
func (c *CategoryCache) Get(budgetID string) []CachedCategory {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.entries[budgetID]
	out := make([]CachedCategory, len(entries))
	copy(out, entries)
	return out
}

// Refresh replaces the entire entry for budgetID and writes the full mapping
// back to disk, pretty-printed.
func (c *CategoryCache) Refresh(budgetID string, categories []CachedCategory) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]CachedCategory, len(categories))
	copy(entries, categories)
	c.entries[budgetID] = entries

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize category cache")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create cache directory")
	}

	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write category cache")
	}

	return nil
}
