package datastore

import "sync"

// listCache holds one pre-fetched table worth of rows. It replaces the
// ambient module-level caches of the previous design: the datastore owns it
// and invalidates it on every write to the corresponding table.
type listCache[T any] struct {
	mu    sync.RWMutex
	valid bool
	items []T
}

func (c *listCache[T]) get() ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return nil, false
	}
	items := make([]T, len(c.items))
	copy(items, c.items)
	return items, true
}

func (c *listCache[T]) set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]T, len(items))
	copy(c.items, items)
	c.valid = true
}

func (c *listCache[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.items = nil
}
