// Package state provides get/set/subscribe snapshot containers. Collections
// shared between surfaces live in containers injected into their callers;
// the engine packages never hold ambient globals.
package state

import "sync"

// Container holds a single snapshot value and fans out replacements to
// subscribers. Snapshots are replaced whole, never mutated in place.
type Container[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[int]func(T)
	next  int
}

// New constructs a container with an initial snapshot.
func New[T any](initial T) *Container[T] {
	return &Container[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current snapshot.
func (c *Container[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the snapshot and notifies subscribers. Notification order is
// unspecified.
func (c *Container[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	fns := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers a callback invoked on every Set. The returned function
// removes the subscription.
func (c *Container[T]) Subscribe(fn func(T)) func() {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
