package lsmtree

import (
	"encoding/binary"
	"fmt"
)

// MaxBlockDataSize is the largest encoded data region a Block can have: the
// offset table stores one u16 per entry, so a block whose data region grew
// past this would overflow the 16-bit offsets it needs to index into. It
// leaves room for the 2-byte num_entries header on top of the 65 535-byte
// ceiling implied by u16 offsets (see the open question on BlockBuilder
// admission in the design notes).
const MaxBlockDataSize = 65529

// Block is an immutable, sorted, length-prefixed run of key/value entries
// plus an offset index into them. It is the smallest unit of read and
// caching in the tree.
//
// Wire format (big-endian):
//
//	u16 num_entries
//	u16 offset * num_entries
//	entries back-to-back, each: u16 key_len, key, u16 value_len, value
type Block struct {
	data    []byte
	offsets []uint16
}

// Encode serializes the block to its exact on-disk byte string.
func (b *Block) Encode() []byte {
	buf := make([]byte, 0, 2+2*len(b.offsets)+len(b.data))
	var hdr [2]byte
	binary.BigEndian.PutUint16(hdr[:], uint16(len(b.offsets)))
	buf = append(buf, hdr[:]...)
	for _, off := range b.offsets {
		var ob [2]byte
		binary.BigEndian.PutUint16(ob[:], off)
		buf = append(buf, ob[:]...)
	}
	buf = append(buf, b.data...)
	return buf
}

// DecodeBlock is the inverse of Encode. It does not assume ownership of raw
// and copies out of it, so the caller's slice may be reused or mutated
// afterwards.
func DecodeBlock(raw []byte) (*Block, error) {
	if len(raw) < 2 {
		return nil, newError("DecodeBlock", KindDecode, fmt.Errorf("block too short: %d bytes", len(raw)))
	}
	numEntries := int(binary.BigEndian.Uint16(raw[:2]))
	offsetsEnd := 2 + 2*numEntries
	if offsetsEnd > len(raw) {
		return nil, newError("DecodeBlock", KindDecode,
			fmt.Errorf("offset table (%d entries) exceeds buffer of %d bytes", numEntries, len(raw)))
	}

	offsets := make([]uint16, numEntries)
	for i := 0; i < numEntries; i++ {
		offsets[i] = binary.BigEndian.Uint16(raw[2+2*i : 2+2*i+2])
	}

	data := make([]byte, len(raw)-offsetsEnd)
	copy(data, raw[offsetsEnd:])

	block := &Block{data: data, offsets: offsets}
	for i := range offsets {
		if _, _, err := block.entryAt(i); err != nil {
			return nil, err
		}
	}
	return block, nil
}

// numEntries reports how many entries the block holds.
func (b *Block) numEntries() int {
	return len(b.offsets)
}

// entryAt decodes the key and value of the entry stored at b.offsets[idx].
// idx must be in range; callers (BlockIterator) are expected to check.
func (b *Block) entryAt(idx int) (key, value []byte, err error) {
	off := int(b.offsets[idx])
	if off+2 > len(b.data) {
		return nil, nil, newError("Block.entryAt", KindDecode, fmt.Errorf("truncated key length at offset %d", off))
	}
	keyLen := int(binary.BigEndian.Uint16(b.data[off : off+2]))
	off += 2
	if off+keyLen+2 > len(b.data) {
		return nil, nil, newError("Block.entryAt", KindDecode, fmt.Errorf("truncated key at offset %d", off))
	}
	key = b.data[off : off+keyLen]
	off += keyLen
	valueLen := int(binary.BigEndian.Uint16(b.data[off : off+2]))
	off += 2
	if off+valueLen > len(b.data) {
		return nil, nil, newError("Block.entryAt", KindDecode, fmt.Errorf("truncated value at offset %d", off))
	}
	value = b.data[off : off+valueLen]
	return key, value, nil
}
