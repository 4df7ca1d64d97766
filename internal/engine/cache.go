package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const cacheFile = ".cache.json"

// runEntry contains metadata about a single successful action run.
type runEntry struct {
	Digest  string    `json:"digest"`
	RunTime time.Time `json:"run_time"`
}

// runCache maps action keys to their last successful run.
type runCache struct {
	Runs map[string]*runEntry `json:"runs"`
}

func (c *runCache) get(key string) (*runEntry, bool) {
	entry, ok := c.Runs[key]
	return entry, ok
}

func (c *runCache) set(key string, entry *runEntry) {
	if c.Runs == nil {
		c.Runs = make(map[string]*runEntry)
	}
	c.Runs[key] = entry
}

// loadCache reads the run cache from the execution root.
func loadCache(dir string) (*runCache, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFile))
	if err != nil {
		return nil, err
	}
	var cache runCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return &cache, nil
}

// saveCache writes the run cache to the execution root.
func saveCache(dir string, cache *runCache) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, cacheFile), data, 0o644)
}
