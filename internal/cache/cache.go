// Package cache is a small file-backed TTL cache keyed per content category.
// The key space is bounded by the category set, so there is no eviction
// beyond overwrite; stale entries simply stop being returned.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"feedsync/internal/core/ports"
)

// DefaultTTL is the freshness window for every category key.
const DefaultTTL = 30 * time.Minute

type entry struct {
	Payload  []byte    `json:"payload"`
	StoredAt time.Time `json:"stored_at"`
}

// FileCache persists entries to a single JSON file. Writes are serialized
// with a mutex; two categories refreshing at once must not corrupt the file.
type FileCache struct {
	path string
	ttl  time.Duration
	now  func() time.Time

	mu   sync.RWMutex
	data map[string]entry
}

var _ ports.Cache = (*FileCache)(nil)

// New loads the cache file at path, creating parent directories as needed.
// A nil now defaults to time.Now; ttl <= 0 defaults to DefaultTTL.
func New(path string, ttl time.Duration, now func() time.Time) (*FileCache, error) {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &FileCache{
		path: path,
		ttl:  ttl,
		now:  now,
		data: make(map[string]entry),
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := c.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return c, nil
}

// CategoryKey namespaces a cache key per content category so categories age
// independently.
func CategoryKey(slug string) string {
	return "category:" + slug
}

// Get returns the payload stored under key if it is younger than the TTL.
func (c *FileCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.data[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.StoredAt) >= c.ttl {
		return nil, false
	}
	return e.Payload, true
}

// Put overwrites key unconditionally, stamping the current time, and writes
// the file through.
func (c *FileCache) Put(key string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry{Payload: payload, StoredAt: c.now()}
	return c.save()
}

func (c *FileCache) load() error {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, &c.data)
}

func (c *FileCache) save() error {
	raw, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, raw, 0o644)
}
