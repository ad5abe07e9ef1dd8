// Package cache holds the per-directory password cache: the last
// verified stored password for each recently seen username.
package cache

import "sync"

// MaxEntries is the capacity bound. On overflow the whole cache is
// cleared before the new entry is inserted; there is no per-entry
// eviction or expiry.
const MaxEntries = 50

// PasswordCache maps username to the stored password hash that last
// verified. One instance is shared by every concurrent request for a
// directory, so all access is mutex-guarded. A cached value can go stale
// if the store changes underneath it; that bounded inconsistency is part
// of the design.
type PasswordCache struct {
	mu      sync.Mutex
	entries map[string]string
}

// New returns an empty cache.
func New() *PasswordCache {
	return &PasswordCache{entries: make(map[string]string, MaxEntries)}
}

// Get returns the cached stored password for username, if present.
func (c *PasswordCache) Get(username string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[username]
	return v, ok
}

// Put records a verified stored password. At capacity the cache is
// flushed entirely first, so the new entry is the only one left.
func (c *PasswordCache) Put(username, stored string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= MaxEntries {
		c.entries = make(map[string]string, MaxEntries)
	}
	c.entries[username] = stored
}

// Len returns the number of cached entries.
func (c *PasswordCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *PasswordCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string, MaxEntries)
}
