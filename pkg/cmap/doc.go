// Package cmap provides a concurrent-safe sharded map keyed by string.
//
// Keys are spread over a power-of-two number of shards, each guarded by
// its own RWMutex, so lookups for different domains rarely contend.
//
// Usage:
//
//	m := cmap.New[*domain.CachedToken]()
//	m.SetIf("example.org", tok, func(old *domain.CachedToken) bool {
//		return tok.NotOlderThan(old)
//	})
//	tok, ok := m.Get("example.org")
//
// Every single-key operation is atomic. Count locks one shard at a time,
// so it observes a per-shard rather than a global snapshot.
package cmap
