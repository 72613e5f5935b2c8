package lsmtree

import "encoding/binary"

// SsTableBuilder streams sorted key/value entries into data blocks, rolling
// to a fresh BlockBuilder whenever the current one fills up, and finally
// emits a complete SST blob.
type SsTableBuilder struct {
	targetBlockSize int
	builder         *BlockBuilder
	meta            []BlockMeta
	blob            []byte
}

// NewSsTableBuilder creates a builder targeting targetBlockSize bytes per
// data block.
func NewSsTableBuilder(targetBlockSize int) *SsTableBuilder {
	return &SsTableBuilder{
		targetBlockSize: targetBlockSize,
		builder:         NewBlockBuilder(targetBlockSize),
	}
}

// Add appends a key/value pair, sealing and rolling the current block as
// many times as needed (a loop, not a single retry, handles the degenerate
// single-entry-too-large case).
func (b *SsTableBuilder) Add(key, value []byte) {
	for !b.builder.Add(key, value) {
		b.sealBlock()
	}
}

// sealBlock finalizes the current BlockBuilder, records its meta entry, and
// appends its encoded bytes to the running blob.
func (b *SsTableBuilder) sealBlock() {
	block := b.builder.Build()
	offset := uint64(len(b.blob))
	firstKey, _, _ := block.entryAt(0)
	firstKeyCopy := append([]byte(nil), firstKey...)

	b.meta = append(b.meta, BlockMeta{Offset: offset, FirstKey: firstKeyCopy})
	b.blob = append(b.blob, block.Encode()...)
	b.builder = NewBlockBuilder(b.targetBlockSize)
}

// EstimatedSize is an upper bound on the in-memory blob length built so
// far; exact accounting is not required.
func (b *SsTableBuilder) EstimatedSize() int {
	return len(b.blob) + b.targetBlockSize
}

// Build finalizes the SST: seals any pending block, appends the encoded
// meta directory and trailing offset pointer, hands the resulting blob to
// the FileObject created via newFile, and returns the opened SsTable.
func (b *SsTableBuilder) Build(id uint64, cache *BlockCache, newFile func([]byte) (FileObject, error)) (*SsTable, error) {
	if !b.builder.IsEmpty() {
		b.sealBlock()
	}

	metaOffset := uint64(len(b.blob))
	b.blob = append(b.blob, encodeBlockMetas(b.meta)...)

	var offsetBuf [8]byte
	binary.BigEndian.PutUint64(offsetBuf[:], metaOffset)
	b.blob = append(b.blob, offsetBuf[:]...)

	file, err := newFile(b.blob)
	if err != nil {
		return nil, err
	}

	return &SsTable{
		id:              id,
		file:            file,
		blockMetas:      b.meta,
		blockMetaOffset: metaOffset,
		cache:           cache,
	}, nil
}
