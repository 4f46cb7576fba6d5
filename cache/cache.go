package cache

import (
	"sync"
	"time"
)

// Cache is an in-process TTL cache with tag-based invalidation. Every
// entry may be associated with a set of tags; invalidating a tag purges
// all entries carrying it. It also holds per-locale export version
// counters so export cache keys change whenever a locale's data does.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	tagged   map[string]map[string]struct{}
	versions map[string]int
}

type entry struct {
	value     interface{}
	tags      []string
	expiresAt time.Time
}

func New() *Cache {
	return &Cache{
		entries:  make(map[string]*entry),
		tagged:   make(map[string]map[string]struct{}),
		versions: make(map[string]int),
	}
}

// Get returns the live value stored under key. Expired entries count as
// misses and are dropped.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeLocked(key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl and records its tag associations.
func (c *Cache) Set(key string, value interface{}, tags []string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value, tags, ttl)
}

// Remember returns the cached value for key, or invokes compute, stores
// the result with the given tags and ttl, and returns it. A compute
// error is returned without caching anything. Concurrent misses for the
// same key may each compute; the last write wins.
func (c *Cache) Remember(key string, tags []string, ttl time.Duration, compute func() (interface{}, error)) (interface{}, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.Set(key, value, tags, ttl)
	return value, nil
}

// InvalidateTags purges every entry associated with any of the given tags.
func (c *Cache) InvalidateTags(tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tag := range tags {
		for key := range c.tagged[tag] {
			c.removeLocked(key)
		}
		delete(c.tagged, tag)
	}
}

// LocaleVersion returns the export version counter for a locale code,
// defaulting to 1 for locales never bumped.
func (c *Cache) LocaleVersion(code string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.versions[code]; ok {
		return v
	}
	return 1
}

// BumpLocaleVersion increments a locale's export version counter so any
// stale export snapshot can no longer be addressed.
func (c *Cache) BumpLocaleVersion(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.versions[code]; !ok {
		c.versions[code] = 1
	}
	c.versions[code]++
}

// Flush drops every entry and tag association. Version counters survive
// so already-issued export keys stay unique.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.tagged = make(map[string]map[string]struct{})
}

func (c *Cache) setLocked(key string, value interface{}, tags []string, ttl time.Duration) {
	if old, ok := c.entries[key]; ok {
		c.detachLocked(key, old.tags)
	}

	c.entries[key] = &entry{
		value:     value,
		tags:      tags,
		expiresAt: time.Now().Add(ttl),
	}

	for _, tag := range tags {
		keys, ok := c.tagged[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tagged[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

func (c *Cache) removeLocked(key string) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	c.detachLocked(key, e.tags)
	delete(c.entries, key)
}

func (c *Cache) detachLocked(key string, tags []string) {
	for _, tag := range tags {
		if keys, ok := c.tagged[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tagged, tag)
			}
		}
	}
}
