package lsmtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenSsTableRoundTripsThroughBytes(t *testing.T) {
	original := buildTestSsTable(t, 7, 64, 30)

	size := original.file.Size()
	raw, err := original.file.Read(0, size)
	require.NoError(t, err)

	reopened, err := OpenSsTable(7, NewMemFileObject(raw), nil)
	require.NoError(t, err)
	require.Equal(t, original.NumBlocks(), reopened.NumBlocks())
	require.Equal(t, original.FirstKey(), reopened.FirstKey())

	for i := 0; i < original.NumBlocks(); i++ {
		wantBlock, err := original.ReadBlock(i)
		require.NoError(t, err)
		gotBlock, err := reopened.ReadBlock(i)
		require.NoError(t, err)
		require.Equal(t, wantBlock.Encode(), gotBlock.Encode())
	}
}

func TestOpenSsTableRejectsTooSmallFile(t *testing.T) {
	_, err := OpenSsTable(1, NewMemFileObject([]byte{1, 2, 3}), nil)
	require.Error(t, err)
}

func TestSsTableFindBlockIdx(t *testing.T) {
	table := buildTestSsTable(t, 1, 64, 50)
	require.Greater(t, table.NumBlocks(), 2)

	idx := table.FindBlockIdx([]byte("key-0000"))
	require.Equal(t, 0, idx)

	idx = table.FindBlockIdx([]byte("zzz"))
	require.Equal(t, table.NumBlocks()-1, idx)

	idx = table.FindBlockIdx([]byte(""))
	require.Equal(t, 0, idx)
}

func TestSsTableReadBlockCachedReusesLoadedBlock(t *testing.T) {
	table := buildTestSsTable(t, 3, 64, 20)
	cache, err := NewBlockCache(16)
	require.NoError(t, err)
	table.cache = cache

	block1, err := table.ReadBlockCached(0)
	require.NoError(t, err)
	block2, err := table.ReadBlockCached(0)
	require.NoError(t, err)
	require.Same(t, block1, block2)
	require.Equal(t, 1, cache.Len())
}
