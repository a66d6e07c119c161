package analysis

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lox/potlimit/poker"
)

// DefaultCacheSize is the number of equity results kept by NewCalculator.
const DefaultCacheSize = 1024

// cacheKey is the canonical identity of an equity query.
type cacheKey struct {
	hero, villain holdingKey
	board         poker.Hand
	simulations   int
	seed          uint64
}

// Cache is a bounded LRU of equity results, safe for concurrent use.
type Cache struct {
	entries *lru.Cache[cacheKey, EquityResult]
	size    int
	hits    atomic.Int64
	misses  atomic.Int64
}

// CacheStats is a point in time view of cache usage.
type CacheStats struct {
	Hits     int64
	Misses   int64
	Len      int
	Capacity int
}

// NewCache creates a cache holding at most size results.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[cacheKey, EquityResult](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, size: size}, nil
}

func (c *Cache) get(k cacheKey) (EquityResult, bool) {
	res, ok := c.entries.Get(k)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return res, ok
}

func (c *Cache) add(k cacheKey, res EquityResult) {
	c.entries.Add(k, res)
}

// Stats reports hits, misses and occupancy.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Len:      c.entries.Len(),
		Capacity: c.size,
	}
}

// Purge drops every cached result and resets the counters.
func (c *Cache) Purge() {
	c.entries.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
}
