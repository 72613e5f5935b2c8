package lsmtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemTablePutGet(t *testing.T) {
	m := NewMemTable(1)
	m.Put([]byte("a"), []byte("1"))

	v, ok := m.Get([]byte("a"))
	require.True(t, ok)
	require.Equal(t, []byte("1"), v)

	_, ok = m.Get([]byte("missing"))
	require.False(t, ok)
}

func TestMemTableScanIsOrderedAndBounded(t *testing.T) {
	m := NewMemTable(1)
	for _, k := range []string{"e", "c", "a", "d", "b"} {
		m.Put([]byte(k), []byte(k))
	}

	it := m.Scan(Included([]byte("b")), Included([]byte("d")))
	var got []string
	for it.IsValid() {
		got = append(got, string(it.Key()))
		require.NoError(t, it.Next())
	}
	require.Equal(t, []string{"b", "c", "d"}, got)
}

func TestMemTableScanSnapshotIsUnaffectedByLaterWrites(t *testing.T) {
	m := NewMemTable(1)
	m.Put([]byte("a"), []byte("1"))

	it := m.Scan(Unbounded(), Unbounded())
	m.Put([]byte("b"), []byte("2"))

	var got []string
	for it.IsValid() {
		got = append(got, string(it.Key()))
		require.NoError(t, it.Next())
	}
	require.Equal(t, []string{"a"}, got)
}

func TestMemTableFlushStreamsSortedEntriesIntoBuilder(t *testing.T) {
	m := NewMemTable(1)
	for i := 9; i >= 0; i-- {
		m.Put([]byte(fmt.Sprintf("key-%02d", i)), []byte(fmt.Sprintf("value-%02d", i)))
	}

	builder := NewSsTableBuilder(4096)
	m.Flush(builder)

	cache, err := NewBlockCache(4)
	require.NoError(t, err)
	table, err := builder.Build(1, cache, func(blob []byte) (FileObject, error) {
		return CreateMemFileObject(blob)
	})
	require.NoError(t, err)

	it, err := NewSsTableIteratorAndSeekToFirst(table)
	require.NoError(t, err)
	require.Equal(t, []byte("key-00"), it.Key())
}

func TestMemTableApproximateSizeGrowsOnWrites(t *testing.T) {
	m := NewMemTable(1)
	require.Equal(t, int64(0), m.ApproximateSizeBytes())
	m.Put([]byte("a"), []byte("1"))
	require.Greater(t, m.ApproximateSizeBytes(), int64(0))
}
