// Package storage holds the token store backends of the BSS client.
//
//   - memory: process-local store on a sharded concurrent map (default)
//   - redisstore: Redis hash per domain, shared by several processes
//
// Every backend keeps at most one CachedToken per domain and refuses a write
// whose IssuedAt is older than the stored one, so IssuedAt never decreases.
// Entries are never deleted by the client; the Redis backend may expire them.
package storage
