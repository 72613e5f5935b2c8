package lsmtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTestSsTable(t *testing.T, id uint64, blockSize int, n int) *SsTable {
	t.Helper()
	builder := NewSsTableBuilder(blockSize)
	for i := 0; i < n; i++ {
		builder.Add([]byte(fmt.Sprintf("key-%04d", i)), []byte(fmt.Sprintf("value-%04d", i)))
	}

	cache, err := NewBlockCache(16)
	require.NoError(t, err)

	table, err := builder.Build(id, cache, func(blob []byte) (FileObject, error) {
		return CreateMemFileObject(blob)
	})
	require.NoError(t, err)
	return table
}

func TestSsTableBuilderProducesMultipleBlocksWhenDataExceedsTarget(t *testing.T) {
	table := buildTestSsTable(t, 1, 64, 50)
	require.Greater(t, table.NumBlocks(), 1)
	require.Equal(t, []byte("key-0000"), table.FirstKey())
}

func TestSsTableBuilderHandlesEmptyInput(t *testing.T) {
	builder := NewSsTableBuilder(256)
	cache, err := NewBlockCache(4)
	require.NoError(t, err)

	table, err := builder.Build(1, cache, func(blob []byte) (FileObject, error) {
		return CreateMemFileObject(blob)
	})
	require.NoError(t, err)
	require.Equal(t, 0, table.NumBlocks())
	require.Nil(t, table.FirstKey())
}
