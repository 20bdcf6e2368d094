// Package cache implements a single-process, in-memory LRU key-value cache.
//
// Goals for this package:
//   - Make the core data structures explicit (map index + doubly linked list)
//   - Provide O(1) Put/Get with promote-on-access and evict-from-back
//   - Be generic over any comparable key and any value type
//
// The cache does no locking and starts no goroutines. A host that shares
// one LRU between goroutines must serialize every call, Get included,
// because Get reorders the list.
package cache
