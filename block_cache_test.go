package lsmtree

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockCacheGetOrInsertCachesResult(t *testing.T) {
	cache, err := NewBlockCache(8)
	require.NoError(t, err)

	var loads int32
	loader := func() (*Block, error) {
		atomic.AddInt32(&loads, 1)
		return &Block{}, nil
	}

	_, err = cache.GetOrInsert(1, 0, loader)
	require.NoError(t, err)
	_, err = cache.GetOrInsert(1, 0, loader)
	require.NoError(t, err)

	require.Equal(t, int32(1), atomic.LoadInt32(&loads))
	require.Equal(t, 1, cache.Len())
}

func TestBlockCacheDeduplicatesConcurrentLoadsOfSameKey(t *testing.T) {
	cache, err := NewBlockCache(8)
	require.NoError(t, err)

	var loads int32
	started := make(chan struct{})
	release := make(chan struct{})
	loader := func() (*Block, error) {
		atomic.AddInt32(&loads, 1)
		close(started)
		<-release
		return &Block{}, nil
	}

	var wg sync.WaitGroup
	const n = 20
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := cache.GetOrInsert(1, 0, loader)
			require.NoError(t, err)
		}()
	}

	<-started
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestBlockCacheDistinctKeysLoadIndependently(t *testing.T) {
	cache, err := NewBlockCache(8)
	require.NoError(t, err)

	_, err = cache.GetOrInsert(1, 0, func() (*Block, error) { return &Block{}, nil })
	require.NoError(t, err)
	_, err = cache.GetOrInsert(1, 1, func() (*Block, error) { return &Block{}, nil })
	require.NoError(t, err)

	require.Equal(t, 2, cache.Len())
}
