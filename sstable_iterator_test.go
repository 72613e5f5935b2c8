package lsmtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSsTableIteratorSeekToFirstCoversAllBlocks(t *testing.T) {
	table := buildTestSsTable(t, 1, 48, 40)
	require.Greater(t, table.NumBlocks(), 1)

	it, err := NewSsTableIteratorAndSeekToFirst(table)
	require.NoError(t, err)

	count := 0
	for it.IsValid() {
		require.Equal(t, []byte(fmt.Sprintf("key-%04d", count)), it.Key())
		require.NoError(t, it.Next())
		count++
	}
	require.Equal(t, 40, count)
}

func TestSsTableIteratorSeekToKeyCrossesBlockBoundary(t *testing.T) {
	table := buildTestSsTable(t, 1, 48, 40)

	it, err := NewSsTableIteratorAndSeekToKey(table, []byte("key-0015"))
	require.NoError(t, err)
	require.True(t, it.IsValid())
	require.Equal(t, []byte("key-0015"), it.Key())

	it, err = NewSsTableIteratorAndSeekToKey(table, []byte("key-0015a"))
	require.NoError(t, err)
	require.True(t, it.IsValid())
	require.Equal(t, []byte("key-0016"), it.Key())
}

func TestSsTableIteratorSeekPastEndIsInvalid(t *testing.T) {
	table := buildTestSsTable(t, 1, 48, 40)

	it, err := NewSsTableIteratorAndSeekToKey(table, []byte("zzzz"))
	require.NoError(t, err)
	require.False(t, it.IsValid())
}
