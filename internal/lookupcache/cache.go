// Package lookupcache memoizes expensive per-model build products (lookup
// tables) behind a 64-bit digest supplied by the caller, so that
// constructing many decoders over structurally identical models doesn't
// repeatedly pay the build cost.
//
// The eviction policy is a W-TinyLFU cache, the same one the BeHierarchic
// block cache uses to keep hot decompressed blocks resident. Unlike
// BeHierarchic, which never touches its tinylfu.T from more than one
// goroutine (all access is serialized through its own multiplexer), this
// package's Cache is reached directly by every concurrent NewReader/
// NewIterator call, so it takes its own mutex around tinylfu.T, which is
// not safe for concurrent use on its own.
package lookupcache

import (
	"sync"

	"github.com/dgryski/go-tinylfu"
)

const sampleFactor = 10

// Cache memoizes values of type V by a 64-bit digest key. Safe for
// concurrent use.
type Cache[V any] struct {
	mu sync.Mutex
	t  *tinylfu.T[uint64, V]
}

// New creates a Cache holding up to size entries.
func New[V any](size int) *Cache[V] {
	if size <= 0 {
		size = 1
	}
	return &Cache[V]{
		t: tinylfu.New[uint64, V](size, size*sampleFactor, identity),
	}
}

// identity is the hasher tinylfu wants for a key that is already a good
// 64-bit hash.
func identity(k uint64) uint64 { return k }

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key uint64) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t.Get(key)
}

// Add stores value under key, possibly evicting a colder entry.
func (c *Cache[V]) Add(key uint64, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t.Add(key, value)
}
