package lsmtree

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// blockCacheKey identifies one cached block: an SST id and a block index
// within it, matching the (sst_id, block_idx) -> block contract.
type blockCacheKey struct {
	sstID    uint64
	blockIdx int
}

// BlockCache is the optional (sstID, blockIdx) -> *Block memoizer an SsTable
// consults via ReadBlockCached. It is backed by an LRU eviction policy and
// deduplicates concurrent loads of the same key with a singleflight group,
// so two goroutines racing to load the same block share a single disk read.
type BlockCache struct {
	cache *lru.Cache[blockCacheKey, *Block]
	group singleflight.Group
}

// NewBlockCache creates a cache holding at most capacity blocks.
func NewBlockCache(capacity int) (*BlockCache, error) {
	c, err := lru.New[blockCacheKey, *Block](capacity)
	if err != nil {
		return nil, newError("NewBlockCache", KindMisuse, err)
	}
	return &BlockCache{cache: c}, nil
}

// GetOrInsert returns the cached block for (sstID, blockIdx), calling
// loader on a miss and caching its result. Concurrent callers for the same
// key block on the same in-flight loader call instead of each issuing their
// own read.
func (c *BlockCache) GetOrInsert(sstID uint64, blockIdx int, loader func() (*Block, error)) (*Block, error) {
	key := blockCacheKey{sstID: sstID, blockIdx: blockIdx}
	if block, ok := c.cache.Get(key); ok {
		return block, nil
	}

	groupKey := fmt.Sprintf("%d:%d", sstID, blockIdx)
	v, err, _ := c.group.Do(groupKey, func() (interface{}, error) {
		if block, ok := c.cache.Get(key); ok {
			return block, nil
		}
		block, err := loader()
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, block)
		return block, nil
	})
	if err != nil {
		log.WithFields(log.Fields{"sst_id": sstID, "block_idx": blockIdx}).
			WithError(err).Debug("block cache loader failed")
		return nil, err
	}
	return v.(*Block), nil
}

// Len reports how many blocks are currently cached.
func (c *BlockCache) Len() int {
	return c.cache.Len()
}
