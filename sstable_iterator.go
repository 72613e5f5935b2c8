package lsmtree

// SsTableIterator is a cursor across all blocks of one SsTable, backed by a
// BlockIterator over whichever block is currently loaded.
type SsTableIterator struct {
	table     *SsTable
	blockIter *BlockIterator
	blockIdx  int
	err       error
}

// NewSsTableIteratorAndSeekToFirst creates an iterator positioned at the
// first entry of table.
func NewSsTableIteratorAndSeekToFirst(table *SsTable) (*SsTableIterator, error) {
	it := &SsTableIterator{table: table}
	if err := it.SeekToFirst(); err != nil {
		return nil, err
	}
	return it, nil
}

// NewSsTableIteratorAndSeekToKey creates an iterator positioned at the
// first entry whose key is >= key.
func NewSsTableIteratorAndSeekToKey(table *SsTable, key []byte) (*SsTableIterator, error) {
	it := &SsTableIterator{table: table}
	if err := it.SeekToKey(key); err != nil {
		return nil, err
	}
	return it, nil
}

// SeekToFirst repositions the iterator at block 0, entry 0.
func (it *SsTableIterator) SeekToFirst() error {
	block, err := it.table.ReadBlockCached(0)
	if err != nil {
		return err
	}
	it.blockIter = NewBlockIteratorAndSeekToFirst(block)
	it.blockIdx = 0
	return nil
}

// seekToKeyInner locates the block that may hold key, seeks to it, and
// falls through to the next block if key sorts past everything in that
// block.
func (it *SsTableIterator) seekToKeyInner(key []byte) (*BlockIterator, int, error) {
	idx := it.table.FindBlockIdx(key)
	block, err := it.table.ReadBlockCached(idx)
	if err != nil {
		return nil, 0, err
	}
	blockIter := NewBlockIteratorAndSeekToKey(block, key)
	if !blockIter.IsValid() {
		idx++
		if idx < it.table.NumBlocks() {
			block, err = it.table.ReadBlockCached(idx)
			if err != nil {
				return nil, 0, err
			}
			blockIter = NewBlockIteratorAndSeekToFirst(block)
		}
	}
	return blockIter, idx, nil
}

// SeekToKey repositions the iterator at the first entry whose key is >= key.
func (it *SsTableIterator) SeekToKey(key []byte) error {
	blockIter, idx, err := it.seekToKeyInner(key)
	if err != nil {
		return err
	}
	it.blockIter, it.blockIdx = blockIter, idx
	return nil
}

// Key returns the current entry's key.
func (it *SsTableIterator) Key() []byte { return it.blockIter.Key() }

// Value returns the current entry's value.
func (it *SsTableIterator) Value() []byte { return it.blockIter.Value() }

// IsValid reports whether the block index is in range and the current
// block iterator is positioned on an entry. Because SsTableBuilder never
// produces an empty block, this is always true right after a successful
// seek unless the block index has run past the last block.
func (it *SsTableIterator) IsValid() bool {
	return it.err == nil && it.blockIdx < it.table.NumBlocks() && it.blockIter.IsValid()
}

// Next advances the inner block iterator, rolling to the next block (and
// loading it) once the current one is exhausted.
func (it *SsTableIterator) Next() error {
	if it.err != nil {
		return it.err
	}
	if err := it.blockIter.Next(); err != nil {
		it.err = err
		return err
	}
	if !it.blockIter.IsValid() {
		it.blockIdx++
		if it.blockIdx < it.table.NumBlocks() {
			block, err := it.table.ReadBlockCached(it.blockIdx)
			if err != nil {
				it.err = err
				return err
			}
			it.blockIter = NewBlockIteratorAndSeekToFirst(block)
		}
	}
	return nil
}
