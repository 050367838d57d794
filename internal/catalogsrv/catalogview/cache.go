package catalogview

import (
	"encoding/hex"
	"encoding/json"
	"slices"
	"sync"

	"github.com/anand-gl/jsoncanonicalizer"
	"github.com/zeebo/blake3"

	"github.com/assetdash/assetdash/pkg/types"
)

const DefaultCacheSize = 256

// CriteriaKey returns a stable key for criteria. Criteria that filter
// identically, e.g. queries differing only in surrounding whitespace, share
// a key.
func CriteriaKey(criteria types.FilterCriteria) (string, error) {
	b, err := json.Marshal(criteria.Normalized())
	if err != nil {
		return "", err
	}
	canonical, err := jsoncanonicalizer.Transform(b)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Cache memoizes Filter results per catalog and criteria. Entries are
// evicted oldest first once the cache is full. A nil *Cache filters
// without caching.
type Cache struct {
	mu      sync.Mutex
	size    int
	entries map[string][]types.Asset
	order   []string
	hits    uint64
	misses  uint64
}

func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		size:    size,
		entries: make(map[string][]types.Asset),
	}
}

// Filter returns the same result as the package level Filter. catalogKey
// must identify the content of assets, e.g. the catalog fingerprint.
func (c *Cache) Filter(catalogKey string, assets []types.Asset, criteria types.FilterCriteria) []types.Asset {
	if c == nil {
		return Filter(assets, criteria)
	}
	ck, err := CriteriaKey(criteria)
	if err != nil {
		return Filter(assets, criteria)
	}
	key := catalogKey + ":" + ck

	c.mu.Lock()
	if r, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return slices.Clone(r)
	}
	c.misses++
	c.mu.Unlock()

	r := Filter(assets, criteria)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		for len(c.order) >= c.size {
			delete(c.entries, c.order[0])
			c.order = c.order[1:]
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = r
	return slices.Clone(r)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the number of cache hits and misses.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
