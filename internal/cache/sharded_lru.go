package cache

const numShards = 64

// Sharded is a uint32-keyed LRU cache split into 64 shards to reduce lock
// contention under parallel load.
type Sharded[V any] struct {
	shards [numShards]*LRU[uint32, V]
}

// NewSharded creates a sharded cache. The capacity is divided evenly across shards.
func NewSharded[V any](capacity int) *Sharded[V] {
	shardCapacity := capacity / numShards
	if shardCapacity < 1 {
		shardCapacity = 1
	}

	s := &Sharded[V]{}
	for i := range numShards {
		s.shards[i] = NewLRU[uint32, V](shardCapacity)
	}
	return s
}

// shard picks a shard with a splitmix-style finalizer so that neighbouring
// keys (packed RGB values) land on different shards.
func (s *Sharded[V]) shard(key uint32) *LRU[uint32, V] {
	h := uint64(key) + 0x9e3779b97f4a7c15
	h = (h ^ (h >> 30)) * 0xbf58476d1ce4e5b9
	h = (h ^ (h >> 27)) * 0x94d049bb133111eb
	h ^= h >> 31
	return s.shards[h%numShards]
}

// Get returns a cached value.
func (s *Sharded[V]) Get(key uint32) (V, bool) {
	return s.shard(key).Get(key)
}

// Set caches a value.
func (s *Sharded[V]) Set(key uint32, value V) {
	s.shard(key).Set(key, value)
}

// GetOrCompute returns the cached value for key, computing it on a miss.
func (s *Sharded[V]) GetOrCompute(key uint32, compute func(uint32) V) V {
	return s.shard(key).GetOrCompute(key, compute)
}

// Len returns the total number of entries across all shards.
func (s *Sharded[V]) Len() int {
	total := 0
	for i := range numShards {
		total += s.shards[i].Len()
	}
	return total
}

// Stats returns aggregated hit/miss statistics.
func (s *Sharded[V]) Stats() (hits, misses int64) {
	for i := range numShards {
		h, m := s.shards[i].Stats()
		hits += h
		misses += m
	}
	return hits, misses
}
