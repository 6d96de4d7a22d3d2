package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// entry is the on-disk cache format.
type entry struct {
	Data      json.RawMessage `json:"data"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Cache provides a TTL file cache at ~/.cache/amicable/.
type Cache struct {
	dir string
	ttl time.Duration
}

// New creates a cache in the user cache directory.
func New(ttl time.Duration) *Cache {
	home, _ := os.UserHomeDir()
	return NewAt(filepath.Join(home, ".cache", "amicable"), ttl)
}

// NewAt creates a cache rooted at dir.
func NewAt(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

// Get retrieves a cached value. Returns nil if missing or expired.
func (c *Cache) Get(key string) []byte {
	path := c.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil
	}
	if time.Now().After(e.ExpiresAt) {
		os.Remove(path)
		return nil
	}
	return e.Data
}

// Set stores a value with TTL. The file is replaced atomically so concurrent
// readers never see a partial entry.
func (c *Cache) Set(key string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	e := entry{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.path(key))
}

// Evict removes a cached key.
func (c *Cache) Evict(key string) {
	os.Remove(c.path(key))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}
