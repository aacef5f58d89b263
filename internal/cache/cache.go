// Package cache provides the file-backed response cache for the
// goUserDirectory service. Each entry is one JSON file holding a complete
// response body; entry freshness is derived from the file's modification
// time. The cache is a process-wide resource shared by all concurrent
// requests: writes go through an exclusive temp-file-then-rename so that a
// reader observes either the old or the new body, never a torn one.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTTL is the entry lifetime used when no TTL is configured.
const DefaultTTL = 60 * time.Second

// ResponseCache stores previously computed response bodies on disk.
type ResponseCache struct {
	dir string
	ttl time.Duration
}

// New creates a response cache rooted at dir, creating the directory if
// needed. A non-positive ttl falls back to DefaultTTL.
func New(dir string, ttl time.Duration) (*ResponseCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	return &ResponseCache{dir: dir, ttl: ttl}, nil
}

// TTL returns the configured entry lifetime.
func (c *ResponseCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached body for key if a fresh entry exists. A stale,
// missing, or unreadable entry is a miss; the read path never deletes
// stale entries, they are simply overwritten by the next Put.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	path := filepath.Join(c.dir, hashKey(key))

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	if time.Since(info.ModTime()) >= c.ttl {
		return nil, false
	}

	body, err := os.ReadFile(path)
	if err != nil || len(body) == 0 {
		return nil, false
	}

	return body, true
}

// Put stores body under key with the current timestamp, overwriting any
// prior entry. The body is written to a private temp file first and then
// renamed into place, so concurrent writers of the same key resolve to
// last-write-wins without corrupting readers.
func (c *ResponseCache) Put(key string, body []byte) error {
	path := filepath.Join(c.dir, hashKey(key))

	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cache temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish cache entry: %w", err)
	}

	return nil
}

// InvalidateAll destroys every cache entry regardless of key or freshness.
// Called after every successful mutation: any cached listing or search
// response may be stale once a record changes state, so the whole
// directory is the unit of invalidation.
func (c *ResponseCache) InvalidateAll() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to remove cache entry %s: %w", entry.Name(), err)
			}
		}
	}

	return firstErr
}

// Len reports the number of entries currently on disk, fresh or stale.
func (c *ResponseCache) Len() int {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0
	}

	n := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			n++
		}
	}
	return n
}
