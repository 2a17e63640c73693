package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoDatasetCache memoizes loaded datasets in memory with a TTL.
// Every entry costs 1, so MaxCost is the number of datasets kept.
type RistrettoDatasetCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewDatasetCache(maxItems int64, ttl time.Duration) (*RistrettoDatasetCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxItems,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create dataset cache failed: %w", err)
	}
	return &RistrettoDatasetCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoDatasetCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Set stores value; it is visible to Get once the write buffer drains.
func (c *RistrettoDatasetCache) Set(key string, value any) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(key, value, 1, c.ttl)
	} else {
		c.cache.Set(key, value, 1)
	}
	c.cache.Wait()
}

func (c *RistrettoDatasetCache) Del(key string) {
	c.cache.Del(key)
}

func (c *RistrettoDatasetCache) Close() { c.cache.Close() }
