package lsmtree

import "encoding/binary"

// entryOverhead is the fixed per-entry admission cost: two bytes for the
// offset-table slot plus the two length prefixes (key_len, value_len).
const entryOverhead = 6

// BlockBuilder accumulates sorted key/value entries until they would exceed
// a target byte budget, at which point Add starts returning false and the
// caller must Build the block and start a new builder.
type BlockBuilder struct {
	targetSize int
	size       int
	data       []byte
	offsets    []uint16
}

// NewBlockBuilder creates a builder with the given byte budget. targetSize
// is clamped to MaxBlockDataSize so the resulting block's offsets always fit
// in 16 bits (see the open question on admission overflow in the design
// notes).
func NewBlockBuilder(targetSize int) *BlockBuilder {
	if targetSize > MaxBlockDataSize {
		targetSize = MaxBlockDataSize
	}
	return &BlockBuilder{targetSize: targetSize}
}

// Add appends a key/value pair to the block. It returns false, without
// modifying the builder, when admitting the entry would exceed the target
// size and the builder already holds at least one entry. A single
// oversized entry is always admitted into an otherwise-empty builder so the
// caller's seal loop in SsTableBuilder.Add makes progress.
func (b *BlockBuilder) Add(key, value []byte) bool {
	cost := len(key) + len(value) + entryOverhead
	if b.size+cost > b.targetSize && !b.IsEmpty() {
		return false
	}

	b.offsets = append(b.offsets, uint16(len(b.data)))

	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(key)))
	b.data = append(b.data, lenBuf[:]...)
	b.data = append(b.data, key...)

	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(value)))
	b.data = append(b.data, lenBuf[:]...)
	b.data = append(b.data, value...)

	b.size += cost
	return true
}

// IsEmpty reports whether any entry has been appended.
func (b *BlockBuilder) IsEmpty() bool {
	return len(b.offsets) == 0
}

// Build consumes the builder and returns the immutable Block it accumulated.
func (b *BlockBuilder) Build() *Block {
	return &Block{data: b.data, offsets: b.offsets}
}
