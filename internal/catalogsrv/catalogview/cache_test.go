package catalogview

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetdash/assetdash/pkg/types"
)

func TestCriteriaKey(t *testing.T) {
	k1, err := CriteriaKey(types.FilterCriteria{Search: " gamma "})
	require.NoError(t, err)
	k2, err := CriteriaKey(types.FilterCriteria{Search: "gamma"})
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)

	k3, err := CriteriaKey(types.FilterCriteria{Country: "gamma"})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	empty, err := CriteriaKey(types.FilterCriteria{})
	require.NoError(t, err)
	blank, err := CriteriaKey(types.FilterCriteria{Search: "  "})
	require.NoError(t, err)
	assert.Equal(t, empty, blank)
}

func TestCacheTransparent(t *testing.T) {
	catalog := randomCatalog(9, 200)
	cache := NewCache(8)
	for _, c := range []types.FilterCriteria{
		{},
		{Country: "Norway"},
		{Search: "an"},
		{Search: " an "},
		{AssetType: "Field", Sentinel2Coverage: "Low"},
		{Country: "Norway"},
	} {
		assert.Equal(t, Filter(catalog, c), cache.Filter("fp", catalog, c))
	}
	hits, misses := cache.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(4), misses)
	assert.Equal(t, 4, cache.Len())
}

func TestCacheReturnsCopies(t *testing.T) {
	catalog := scenarioCatalog()
	cache := NewCache(4)
	c := types.FilterCriteria{Country: "Norway"}

	first := cache.Filter("fp", catalog, c)
	first[0].AssetID = "mutated"
	second := cache.Filter("fp", catalog, c)
	assert.Equal(t, "a1", second[0].AssetID)
}

func TestCacheSeparatesCatalogs(t *testing.T) {
	cache := NewCache(4)
	c := types.FilterCriteria{Country: "Norway"}
	a := cache.Filter("one", scenarioCatalog(), c)
	b := cache.Filter("two", scenarioCatalog()[:1], c)
	assert.Len(t, a, 2)
	assert.Len(t, b, 1)
}

func TestCacheEviction(t *testing.T) {
	catalog := randomCatalog(10, 20)
	cache := NewCache(3)
	for i := 0; i < 10; i++ {
		cache.Filter("fp", catalog, types.FilterCriteria{Search: fmt.Sprintf("q%d", i)})
	}
	assert.Equal(t, 3, cache.Len())

	cache.Filter("fp", catalog, types.FilterCriteria{Search: "q9"})
	hits, _ := cache.Stats()
	assert.Equal(t, uint64(1), hits)

	cache.Filter("fp", catalog, types.FilterCriteria{Search: "q0"})
	hits, _ = cache.Stats()
	assert.Equal(t, uint64(1), hits)
}

func TestNilCache(t *testing.T) {
	var cache *Cache
	catalog := scenarioCatalog()
	assert.Equal(t, Filter(catalog, types.FilterCriteria{Search: "beta"}),
		cache.Filter("fp", catalog, types.FilterCriteria{Search: "beta"}))
}

func TestCacheConcurrent(t *testing.T) {
	catalog := randomCatalog(11, 100)
	cache := NewCache(0)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := types.FilterCriteria{Country: fakeCountries[i%len(fakeCountries)]}
			assert.Equal(t, Filter(catalog, c), cache.Filter("fp", catalog, c))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, len(fakeCountries), cache.Len())
}
