package lsmtree

// MemTable is the mutable, in-memory write buffer every Put lands in before
// a flush turns it into an immutable SsTable. It is safe for concurrent use:
// reads never block behind other reads or behind writes to unrelated keys.
type MemTable struct {
	id  uint64
	skl *skipList
}

// NewMemTable creates an empty MemTable identified by id. The id is
// carried through so callers can correlate a flushed SsTable back to the
// MemTable it came from for logging purposes.
func NewMemTable(id uint64) *MemTable {
	return &MemTable{id: id, skl: newSkipList()}
}

// ID returns the MemTable's identifier.
func (m *MemTable) ID() uint64 { return m.id }

// Put inserts or overwrites key with value.
func (m *MemTable) Put(key, value []byte) {
	m.skl.put(key, value)
}

// Get returns the current value for key, if present.
func (m *MemTable) Get(key []byte) ([]byte, bool) {
	return m.skl.get(key)
}

// Scan returns a snapshot iterator over every entry whose key falls within
// [lower, upper] per their Bound kinds. The snapshot is a plain copied
// slice, so later writes to the MemTable never affect an iterator already
// handed out.
func (m *MemTable) Scan(lower, upper Bound) *MemTableIterator {
	entries := m.skl.collectRange(lower, upper)
	return newMemTableIterator(entries)
}

// Len returns the number of distinct keys currently stored.
func (m *MemTable) Len() int64 {
	return m.skl.len()
}

// ApproximateSizeBytes estimates the MemTable's memory footprint, summing
// key and value lengths as they are written (including once per overwrite).
// It is a flush-threshold heuristic, not an exact accounting.
func (m *MemTable) ApproximateSizeBytes() int64 {
	return m.skl.approxSizeBytes()
}

// Flush streams every entry, in ascending key order, into builder. The
// caller is responsible for calling builder.Build afterward.
func (m *MemTable) Flush(builder *SsTableBuilder) {
	m.skl.forEach(func(key, value []byte) {
		builder.Add(key, value)
	})
}
