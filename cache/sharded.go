package cache

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultShardCount is the number of shards. It is a power of two so
	// that a shard is picked with a mask.
	DefaultShardCount = 16

	// DefaultCapacity is the default maximum number of entries per shard.
	DefaultCapacity = 256

	shardMask = DefaultShardCount - 1
)

// Hasher computes the hash used to pick a key's shard.
type Hasher[K any] func(K) uint64

// StringHasher hashes a string with FNV-1a.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// IntHasher hashes an int with FNV-1a over its little-endian bytes.
func IntHasher(i int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Uint64Hasher returns the key itself.
func Uint64Hasher(u uint64) uint64 {
	return u
}

// Stats is a snapshot of cache statistics.
type Stats struct {
	Len           int
	Capacity      int
	TotalCapacity int
	Hits          uint64
	Misses        uint64
	HitRate       float64
	Evictions     uint64
}

// ShardedCache is an LRU cache split into DefaultShardCount independent
// shards. Each shard is a golang-lru cache with its own lock, so goroutines
// working on different keys rarely contend.
//
// Eviction is per shard: a shard drops its least recently used entry when
// it holds Capacity entries and a new key arrives.
type ShardedCache[K comparable, V any] struct {
	shards   [DefaultShardCount]shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	// create serializes GetOrCreate misses so a value is built once.
	create sync.Mutex
	lru    *lru.Cache[K, V]
}

// NewSharded creates a cache holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *ShardedCache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &ShardedCache[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		// lru.New only fails for non-positive sizes.
		c.shards[i].lru, _ = lru.New[K, V](capacity)
	}
	return c
}

func (c *ShardedCache[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get returns the value cached for key and marks it recently used.
func (c *ShardedCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.shardFor(key).lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores value under key. The value is not copied; callers must not
// modify it afterwards.
func (c *ShardedCache[K, V]) Set(key K, value V) {
	if c.shardFor(key).lru.Add(key, value) {
		c.evictions.Add(1)
	}
}

// GetOrCreate returns the cached value for key, calling create on a miss.
// Concurrent misses on the same shard wait for each other, so create runs
// once per key; keep it short.
func (c *ShardedCache[K, V]) GetOrCreate(key K, create func() V) V {
	s := c.shardFor(key)
	if v, ok := s.lru.Get(key); ok {
		c.hits.Add(1)
		return v
	}

	s.create.Lock()
	defer s.create.Unlock()
	if v, ok := s.lru.Get(key); ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)
	v := create()
	if s.lru.Add(key, v) {
		c.evictions.Add(1)
	}
	return v
}

// Delete removes key and reports whether it was present.
func (c *ShardedCache[K, V]) Delete(key K) bool {
	return c.shardFor(key).lru.Remove(key)
}

// Clear removes all entries.
func (c *ShardedCache[K, V]) Clear() {
	for i := range c.shards {
		c.shards[i].lru.Purge()
	}
}

// Len returns the number of entries across all shards.
func (c *ShardedCache[K, V]) Len() int {
	total := 0
	for i := range c.shards {
		total += c.shards[i].lru.Len()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *ShardedCache[K, V]) Capacity() int {
	return c.capacity
}

// TotalCapacity returns the capacity across all shards.
func (c *ShardedCache[K, V]) TotalCapacity() int {
	return c.capacity * DefaultShardCount
}

// ShardLen returns the number of entries in each shard.
func (c *ShardedCache[K, V]) ShardLen() [DefaultShardCount]int {
	var lens [DefaultShardCount]int
	for i := range c.shards {
		lens[i] = c.shards[i].lru.Len()
	}
	return lens
}

// Stats returns current cache statistics.
func (c *ShardedCache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return Stats{
		Len:           c.Len(),
		Capacity:      c.capacity,
		TotalCapacity: c.TotalCapacity(),
		Hits:          hits,
		Misses:        misses,
		HitRate:       hitRate,
		Evictions:     c.evictions.Load(),
	}
}

// ResetStats sets all counters to zero.
func (c *ShardedCache[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
