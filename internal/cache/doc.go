// Package cache provides bounded in-memory LRU caching for hot conversions.
//
// # LRU
//
// LRU is a mutex-guarded, entry-bounded least-recently-used cache with hit and
// miss counters.
//
// # Sharded
//
// Sharded spreads uint32 keys across 64 LRU shards so that concurrent workers
// (for example parallel neighbour precomputation) do not contend on a single
// lock. It is used to memoize packed RGB → CIELAB conversions.
package cache
