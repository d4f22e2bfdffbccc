package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries under a local directory, one JSON file per
// entry, sharded into subdirectories by key class so graph documents,
// query results, and rendered artifacts can be inspected or cleared
// separately. It backs the CLI, which has no shared cache server.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating the
// directory if it does not exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk form of one cached value.
type fileEntry struct {
	Data      []byte    `json:"data"`
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get returns the stored bytes for key. Expired and unreadable entries
// are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores data under key. A zero ttl falls back to the retention of
// the key's class (TTLGraph, TTLQuery, TTLArtifact).
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = DefaultTTL(key)
	}
	now := time.Now()
	entry := fileEntry{
		Data:      data,
		SavedAt:   now,
		ExpiresAt: now.Add(ttl),
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, entryData, 0o644)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to its file under the class subdirectory. The file
// name hashes the full key, so keys of any shape stay filesystem-safe.
func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, keyClass(key), Hash([]byte(key))+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
