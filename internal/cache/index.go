package cache

import (
	"sync"
	"sync/atomic"
)

const (
	// shardCount must be a power of 2.
	shardCount = 16
	shardMask  = shardCount - 1

	// DefaultCapacity is the total number of entries used when NewIndex is
	// given a non-positive capacity.
	DefaultCapacity = 4096
)

// Index is a thread-safe, sharded LRU map from a 24-bit RGB key to a
// palette index.
type Index struct {
	shards   [shardCount]shard
	capacity int // per shard

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard struct {
	mu      sync.Mutex
	entries map[uint32]*lruNode
	lru     lruList
}

// NewIndex creates an index holding about capacity entries in total.
// If capacity <= 0, DefaultCapacity is used.
func NewIndex(capacity int) *Index {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Index{
		capacity: max((capacity+shardCount-1)/shardCount, 1),
	}
	for i := range c.shards {
		c.shards[i].entries = make(map[uint32]*lruNode)
	}
	return c
}

// shardFor spreads neighbouring colors over shards with a Fibonacci hash.
func (c *Index) shardFor(key uint32) *shard {
	return &c.shards[(key*0x9E3779B1)>>28&shardMask]
}

// Get returns the cached index for key.
func (c *Index) Get(key uint32) (int, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	n, ok := s.entries[key]
	if ok {
		s.lru.MoveToFront(n)
	}
	s.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return 0, false
	}
	c.hits.Add(1)
	return int(n.index), true
}

// Set stores index for key, evicting the least recently used entry of the
// shard when it is full.
func (c *Index) Set(key uint32, index int) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.entries[key]; ok {
		n.index = int32(index)
		s.lru.MoveToFront(n)
		return
	}

	for s.lru.Len() >= c.capacity {
		old := s.lru.RemoveOldest()
		if old == nil {
			break
		}
		delete(s.entries, old.key)
		c.evictions.Add(1)
	}

	n := &lruNode{key: key, index: int32(index)}
	s.lru.PushFront(n)
	s.entries[key] = n
}

// GetOrCompute returns the cached index for key, calling compute on a miss.
// compute runs without the shard lock held, so concurrent misses on one key
// may each call it.
func (c *Index) GetOrCompute(key uint32, compute func() int) int {
	if i, ok := c.Get(key); ok {
		return i
	}
	i := compute()
	c.Set(key, i)
	return i
}

// Len returns the number of entries across all shards.
func (c *Index) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the total capacity across all shards.
func (c *Index) Capacity() int {
	return c.capacity * shardCount
}

// Clear removes all entries. Statistics are kept.
func (c *Index) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		clear(s.entries)
		s.lru.Clear()
		s.mu.Unlock()
	}
}

// Stats holds cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns a snapshot of the counters.
func (c *Index) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.Capacity(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
