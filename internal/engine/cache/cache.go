// Package cache stores per-bytecode analysis so repeated executions of the
// same code skip the analysis pass.
package cache

import (
	"sync"

	"github.com/evmvm/evmvm/types"
)

// Mode controls how the cache behaves, settable through the instance
// configuration surface.
type Mode int32

const (
	// ModeOn reads and writes the cache. Default.
	ModeOn Mode = iota
	// ModeOff bypasses the cache entirely.
	ModeOff
	// ModeReadOnly serves hits but stores nothing new.
	ModeReadOnly
)

// Entry is an analyzed unit of bytecode keyed by its code hash.
type Entry struct {
	Code      []byte
	JumpDests []byte // bitmap of valid JUMPDEST positions
}

// Cache manages analyzed bytecode for one engine instance. It is safe for
// concurrent use; instances do not share caches.
type Cache struct {
	mu      sync.RWMutex
	entries map[types.Hash]*Entry
	pinned  map[types.Hash]struct{}
	hits    map[types.Hash]uint32
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[types.Hash]*Entry),
		pinned:  make(map[types.Hash]struct{}),
		hits:    make(map[types.Hash]uint32),
	}
}

// Save stores an analyzed entry under its code hash.
func (c *Cache) Save(checksum types.Hash, entry *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[checksum] = entry
}

// Load retrieves an entry and counts the hit.
func (c *Cache) Load(checksum types.Hash) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, exists := c.entries[checksum]
	if exists {
		c.hits[checksum]++
	}
	return entry, exists
}

// Hits reports how often an entry was served.
func (c *Cache) Hits(checksum types.Hash) uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits[checksum]
}

// Pin marks an entry as not removable.
func (c *Cache) Pin(checksum types.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinned[checksum] = struct{}{}
}

// Unpin removes the pin from an entry.
func (c *Cache) Unpin(checksum types.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pinned, checksum)
}

// Remove deletes an entry unless it is pinned. Reports whether the entry
// is gone.
func (c *Cache) Remove(checksum types.Hash) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, isPinned := c.pinned[checksum]; isPinned {
		return false
	}
	delete(c.entries, checksum)
	delete(c.hits, checksum)
	return true
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops all entries, pins included.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[types.Hash]*Entry)
	c.pinned = make(map[types.Hash]struct{})
	c.hits = make(map[types.Hash]uint32)
}
