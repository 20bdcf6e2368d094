package cache

import (
	"github.com/rs/zerolog"
)

// LRU is an in-memory key-value cache with a fixed capacity and
// least-recently-used eviction.
//
// The core design is explicit: a map gives O(1) key lookup, and each map
// value is a handle into a doubly linked list that keeps recency order.
// Put and Get both act on the two structures together, so a caller never
// sees them disagree.
//
// LRU is not safe for concurrent use. Get is a mutating operation (it
// promotes the key), so even readers must be serialized by the owner.
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]*node[K, V]
	order    recencyList[K, V] // front = most recently used (MRU), back = least recently used (LRU)

	onEvict func(key K, value V)
	log     zerolog.Logger
}

// Option configures an LRU at construction time.
type Option[K comparable, V any] func(*LRU[K, V])

// WithEvictionHook registers fn to be called for every entry discarded
// because of capacity pressure. It is not called when Put replaces the
// value of an existing key.
func WithEvictionHook[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *LRU[K, V]) {
		c.onEvict = fn
	}
}

// WithLogger makes the cache log evictions at debug level.
func WithLogger[K comparable, V any](log zerolog.Logger) Option[K, V] {
	return func(c *LRU[K, V]) {
		c.log = log
	}
}

// New constructs an empty cache holding at most capacity entries.
//
// Capacity semantics:
//   - capacity <= 0 yields a cache that holds nothing: every Put is dropped
//     immediately (and reported to the eviction hook), Len stays 0
//
// New never returns a nil LRU.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *LRU[K, V] {
	if capacity < 0 {
		capacity = 0
	}

	c := &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*node[K, V]),
		log:      zerolog.Nop(),
	}
	c.order.init()

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put inserts or replaces the value for key and marks key as most recently used.
//
// If key is new and the cache is full, the least recently used entry is
// evicted first, so Len never exceeds Capacity.
//
// Complexity: O(1).
func (c *LRU[K, V]) Put(key K, value V) {
	if n, ok := c.items[key]; ok {
		n.value = value
		// Updating counts as use; move to MRU.
		c.order.moveToFront(n)
		return
	}

	if c.capacity == 0 {
		c.evicted(key, value)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictOldest()
	}

	n := &node[K, V]{key: key, value: value}
	c.order.pushFront(n)
	c.items[key] = n
}

// Get returns a copy of the value stored for key and marks key as most
// recently used. A miss returns the zero value and false and leaves the
// recency order untouched.
//
// Get never evicts.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.moveToFront(n)
	return n.value, true
}

// Peek is like Get but does not change the recency order.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	n, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains reports whether key is cached, without promoting it.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Oldest returns the entry that the next eviction would discard.
func (c *LRU[K, V]) Oldest() (K, V, bool) {
	n := c.order.back()
	if n == nil {
		var (
			zeroK K
			zeroV V
		)
		return zeroK, zeroV, false
	}
	return n.key, n.value, true
}

// Len returns the number of stored entries.
func (c *LRU[K, V]) Len() int {
	return len(c.items)
}

// Capacity returns the maximum number of entries the cache holds.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Keys returns keys in MRU -> LRU order.
//
// This is a debug helper used by the gocache command.
func (c *LRU[K, V]) Keys() []K {
	out := make([]K, 0, c.order.len)
	for n := c.order.front(); n != nil; n = c.order.nextOf(n) {
		out = append(out, n.key)
	}
	return out
}

func (c *LRU[K, V]) evictOldest() {
	n := c.order.back()
	if n == nil {
		return
	}
	c.order.remove(n)
	delete(c.items, n.key)
	c.evicted(n.key, n.value)
}

func (c *LRU[K, V]) evicted(key K, value V) {
	c.log.Debug().
		Interface("key", key).
		Int("len", len(c.items)).
		Int("capacity", c.capacity).
		Msg("evicted least recently used entry")

	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}
