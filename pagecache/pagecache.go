// Package pagecache keeps the rendered payloads of the site pages and marks
// them stale when the content they show changes.
package pagecache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.vocdoni.io/dvote/log"
)

// DefaultSize is the number of pages kept when no size is configured.
const DefaultSize = 128

// Cache is an LRU cache of rendered pages keyed by path. Invalidating a path
// evicts its payload and bumps its generation, so a render that started
// before the invalidation is never stored.
type Cache struct {
	mu          sync.Mutex
	entries     *lru.Cache[string, []byte]
	generations map[string]uint64
}

// New creates a cache holding up to size pages. A non positive size uses
// DefaultSize.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("cannot create page cache: %w", err)
	}
	return &Cache{
		entries:     entries,
		generations: make(map[string]uint64),
	}, nil
}

// Get returns the cached payload of the path.
func (c *Cache) Get(path string) ([]byte, bool) {
	return c.entries.Get(path)
}

// Set stores the payload of the path.
func (c *Cache) Set(path string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Add(path, payload)
}

// Invalidate marks the given paths as stale. The next read of each path
// renders it again.
func (c *Cache) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, path := range paths {
		c.generations[path]++
		c.entries.Remove(path)
	}
	log.Debugw("pages invalidated", "paths", paths)
}

// Render returns the cached payload of the path, or calls render and caches
// its result. Render errors are returned and nothing is cached.
func (c *Cache) Render(path string, render func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	if payload, ok := c.entries.Get(path); ok {
		c.mu.Unlock()
		return payload, nil
	}
	generation := c.generations[path]
	c.mu.Unlock()

	payload, err := render()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// skip the store when the path was invalidated while rendering
	if c.generations[path] == generation {
		c.entries.Add(path, payload)
	}
	return payload, nil
}

// Len returns the number of cached pages.
func (c *Cache) Len() int {
	return c.entries.Len()
}
