package lsmtree

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
)

// BlockMeta is the per-block directory record stored in an SST's meta
// section: the block's starting byte offset inside the file and the first
// key it contains. The meta slice is kept sorted by offset, equivalently by
// first key.
type BlockMeta struct {
	Offset   uint64
	FirstKey []byte
}

// encodeBlockMetas serializes a meta directory: each record is
// u64 offset, u64 first_key_len, first_key bytes, back to back.
func encodeBlockMetas(metas []BlockMeta) []byte {
	buf := make([]byte, 0)
	var scratch [8]byte
	for _, m := range metas {
		binary.BigEndian.PutUint64(scratch[:], m.Offset)
		buf = append(buf, scratch[:]...)
		binary.BigEndian.PutUint64(scratch[:], uint64(len(m.FirstKey)))
		buf = append(buf, scratch[:]...)
		buf = append(buf, m.FirstKey...)
	}
	return buf
}

// decodeBlockMetas is the inverse of encodeBlockMetas.
func decodeBlockMetas(buf []byte) ([]BlockMeta, error) {
	var metas []BlockMeta
	for len(buf) > 0 {
		if len(buf) < 16 {
			return nil, newError("decodeBlockMetas", KindDecode, fmt.Errorf("truncated meta record header: %d bytes left", len(buf)))
		}
		offset := binary.BigEndian.Uint64(buf[0:8])
		keyLen := binary.BigEndian.Uint64(buf[8:16])
		buf = buf[16:]
		if uint64(len(buf)) < keyLen {
			return nil, newError("decodeBlockMetas", KindDecode, fmt.Errorf("truncated first_key: want %d, have %d", keyLen, len(buf)))
		}
		firstKey := make([]byte, keyLen)
		copy(firstKey, buf[:keyLen])
		buf = buf[keyLen:]
		metas = append(metas, BlockMeta{Offset: offset, FirstKey: firstKey})
	}
	return metas, nil
}

// SsTable is an immutable, on-disk sorted key/value file: concatenated
// blocks followed by a block-meta directory and a trailing offset pointer
// (see the wire layout in the design doc). It exclusively owns its
// FileObject and meta directory; iterators share it by holding a pointer.
type SsTable struct {
	id              uint64
	file            FileObject
	blockMetas      []BlockMeta
	blockMetaOffset uint64
	cache           *BlockCache
}

// OpenSsTable opens an SST from file. It reads only the trailing offset
// pointer and the meta directory; data blocks are read lazily via
// ReadBlock/ReadBlockCached. cache may be nil.
func OpenSsTable(id uint64, file FileObject, cache *BlockCache) (*SsTable, error) {
	size := file.Size()
	if size < 8 {
		return nil, newError("OpenSsTable", KindDecode, fmt.Errorf("file too small to contain a meta offset: %d bytes", size))
	}

	tail, err := file.Read(size-8, 8)
	if err != nil {
		return nil, err
	}
	metaOffset := binary.BigEndian.Uint64(tail)

	if metaOffset > size-8 {
		return nil, newError("OpenSsTable", KindDecode, fmt.Errorf("meta offset %d past end of blocks (%d)", metaOffset, size-8))
	}
	metaBuf, err := file.Read(metaOffset, size-8-metaOffset)
	if err != nil {
		return nil, err
	}
	metas, err := decodeBlockMetas(metaBuf)
	if err != nil {
		return nil, err
	}

	return &SsTable{
		id:              id,
		file:            file,
		blockMetas:      metas,
		blockMetaOffset: metaOffset,
		cache:           cache,
	}, nil
}

// NumBlocks returns the number of data blocks in the table.
func (t *SsTable) NumBlocks() int {
	return len(t.blockMetas)
}

// FirstKey returns the first key of the table, or nil if it has no blocks.
func (t *SsTable) FirstKey() []byte {
	if len(t.blockMetas) == 0 {
		return nil
	}
	return t.blockMetas[0].FirstKey
}

// blockSpan returns the [start, end) byte range of block i within the file.
func (t *SsTable) blockSpan(i int) (uint64, uint64) {
	start := t.blockMetas[i].Offset
	end := t.blockMetaOffset
	if i+1 < len(t.blockMetas) {
		end = t.blockMetas[i+1].Offset
	}
	return start, end
}

// ReadBlock reads and decodes block i directly from the file, bypassing the
// cache.
func (t *SsTable) ReadBlock(i int) (*Block, error) {
	if i < 0 || i >= len(t.blockMetas) {
		return nil, newError("SsTable.ReadBlock", KindRange, fmt.Errorf("block index %d out of range [0, %d)", i, len(t.blockMetas)))
	}
	start, end := t.blockSpan(i)
	raw, err := t.file.Read(start, end-start)
	if err != nil {
		return nil, err
	}
	return DecodeBlock(raw)
}

// ReadBlockCached reads block i, consulting t's cache first if one is
// installed. With no cache installed it behaves exactly like ReadBlock.
func (t *SsTable) ReadBlockCached(i int) (*Block, error) {
	if t.cache == nil {
		return t.ReadBlock(i)
	}
	return t.cache.GetOrInsert(t.id, i, func() (*Block, error) {
		return t.ReadBlock(i)
	})
}

// FindBlockIdx returns the index of the block that may contain key: the
// largest i such that blockMetas[i].FirstKey < key, or 0 if there is none.
// When key equals the first key of block i (i > 0) this is block i-1, and a
// seek that finds nothing there moves on to block i. The caller must still
// search within that block; this is a coarse locator only.
func (t *SsTable) FindBlockIdx(key []byte) int {
	idx := sort.Search(len(t.blockMetas), func(i int) bool {
		return bytes.Compare(t.blockMetas[i].FirstKey, key) >= 0
	})
	// idx is the partition point of "FirstKey < key"; saturate at zero.
	if idx == 0 {
		return 0
	}
	return idx - 1
}
