package lsmtree

import (
	"bytes"
	"container/heap"
)

// mergeHeapItem pairs a child iterator with its constructor index. Lower
// indices are higher priority: when two children hold the same key, the
// lower-indexed one wins and the other's entry for that key is dropped.
type mergeHeapItem struct {
	idx  int
	iter StorageIterator
}

// higherPriority reports whether a should be preferred over b as the
// MergeIterator's current entry: invalid iterators always lose to valid
// ones, and among valid iterators the smaller key wins, ties broken by the
// smaller constructor index.
func higherPriority(a, b *mergeHeapItem) bool {
	aValid, bValid := a.iter.IsValid(), b.iter.IsValid()
	if aValid != bValid {
		return aValid
	}
	if !aValid {
		return false
	}
	if c := bytes.Compare(a.iter.Key(), b.iter.Key()); c != 0 {
		return c < 0
	}
	return a.idx < b.idx
}

// mergeHeap is a container/heap.Interface over mergeHeapItems, ordered so
// that the highest-priority item (per higherPriority) is always at index 0.
type mergeHeap []*mergeHeapItem

func (h mergeHeap) Len() int            { return len(h) }
func (h mergeHeap) Less(i, j int) bool  { return higherPriority(h[i], h[j]) }
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(*mergeHeapItem)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// MergeIterator merges N child iterators of the same StorageIterator
// capability into a single ordered, deduplicated stream. Children are
// numbered by their position in the constructor slice; lower indices are
// higher priority and win ties on duplicate keys (supply children
// newest-first for LSM last-writer-wins semantics).
type MergeIterator struct {
	heap    mergeHeap
	current *mergeHeapItem
}

// NewMergeIterator builds a MergeIterator over children. An empty slice
// produces a permanently invalid iterator.
func NewMergeIterator(children []StorageIterator) *MergeIterator {
	if len(children) == 0 {
		return &MergeIterator{}
	}

	h := make(mergeHeap, 0, len(children))
	for i, it := range children {
		h = append(h, &mergeHeapItem{idx: i, iter: it})
	}
	heap.Init(&h)

	current := heap.Pop(&h).(*mergeHeapItem)
	return &MergeIterator{heap: h, current: current}
}

// Key returns the current entry's key, taken from whichever child currently
// holds priority.
func (m *MergeIterator) Key() []byte {
	if m.current == nil {
		return nil
	}
	return m.current.iter.Key()
}

// Value returns the current entry's value.
func (m *MergeIterator) Value() []byte {
	if m.current == nil {
		return nil
	}
	return m.current.iter.Value()
}

// IsValid reports whether there is a current entry.
func (m *MergeIterator) IsValid() bool {
	return m.current != nil && m.current.iter.IsValid()
}

// Next advances past the current key. Every child iterator whose key
// equals the emitted key is advanced too, so the same key is never emitted
// twice even if several children hold it.
func (m *MergeIterator) Next() error {
	if !m.IsValid() {
		return nil
	}
	currentKey := m.current.iter.Key()

	for m.heap.Len() > 0 {
		top := m.heap[0]
		if !top.iter.IsValid() {
			// Every remaining child is invalid (see higherPriority: a valid
			// child would always outrank an invalid one at the top), so
			// there's nothing left to deduplicate against.
			return m.current.iter.Next()
		}
		if !bytes.Equal(top.iter.Key(), currentKey) {
			break
		}
		if err := top.iter.Next(); err != nil {
			return err
		}
		heap.Fix(&m.heap, 0)
	}

	if err := m.current.iter.Next(); err != nil {
		return err
	}

	for m.heap.Len() > 0 && !m.current.iter.IsValid() {
		m.current = heap.Pop(&m.heap).(*mergeHeapItem)
	}

	if m.heap.Len() > 0 && higherPriority(m.heap[0], m.current) {
		heap.Push(&m.heap, m.current)
		m.current = heap.Pop(&m.heap).(*mergeHeapItem)
	}

	return nil
}
