package lsmtree

import "bytes"

// BlockIterator is a linear cursor over one Block. It materializes the
// current entry's key and value so Key/Value can be called repeatedly
// without re-decoding.
type BlockIterator struct {
	block *Block
	key   []byte
	value []byte
	idx   int
	err   error
}

func newBlockIterator(block *Block) *BlockIterator {
	return &BlockIterator{block: block}
}

// NewBlockIteratorAndSeekToFirst creates an iterator positioned at entry 0.
func NewBlockIteratorAndSeekToFirst(block *Block) *BlockIterator {
	it := newBlockIterator(block)
	it.SeekToFirst()
	return it
}

// NewBlockIteratorAndSeekToKey creates an iterator positioned at the first
// entry whose key is >= key (a lower bound). If no such entry exists the
// iterator is invalid.
func NewBlockIteratorAndSeekToKey(block *Block, key []byte) *BlockIterator {
	it := newBlockIterator(block)
	it.SeekToKey(key)
	return it
}

// Key returns the current entry's key. Only valid when IsValid() is true.
func (it *BlockIterator) Key() []byte { return it.key }

// Value returns the current entry's value. Only valid when IsValid() is true.
func (it *BlockIterator) Value() []byte { return it.value }

// IsValid reports whether the cursor is positioned on an entry.
func (it *BlockIterator) IsValid() bool {
	return it.err == nil && it.idx < it.block.numEntries()
}

// seekIdx materializes key/value for the entry at the current idx.
func (it *BlockIterator) seekIdx() {
	key, value, err := it.block.entryAt(it.idx)
	if err != nil {
		it.err = err
		it.key, it.value = nil, nil
		return
	}
	it.key, it.value = key, value
}

// SeekToFirst repositions the cursor at entry 0.
func (it *BlockIterator) SeekToFirst() {
	it.idx = 0
	if it.IsValid() {
		it.seekIdx()
	}
}

// Next advances the cursor by one entry.
func (it *BlockIterator) Next() error {
	if it.err != nil {
		return it.err
	}
	it.idx++
	if it.IsValid() {
		it.seekIdx()
	}
	return it.err
}

// SeekToKey positions the cursor at the smallest-index entry whose key is
// >= key. Block keys are non-decreasing, so a linear scan from the front is
// enough and the code is equivalent to a binary search.
func (it *BlockIterator) SeekToKey(key []byte) {
	it.SeekToFirst()
	for it.IsValid() {
		if bytes.Compare(it.Key(), key) < 0 {
			if err := it.Next(); err != nil {
				return
			}
		} else {
			break
		}
	}
}
