package db_test

import (
	"context"
	"testing"

	"github.com/dasdy/flaykeys/db"
	"github.com/dasdy/flaykeys/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	first, err := db.NewStorageFromConnection(memoryConnection(t), false)
	require.NoError(t, err)

	second, err := db.NewStorageFromConnection(memoryConnection(t), false)
	require.NoError(t, err)

	output, err := db.NewStorageFromConnection(memoryConnection(t), false)
	require.NoError(t, err)

	require.NoError(t, first.Store(touchAt(0, 0, false)))
	require.NoError(t, first.Store(touchAt(0, 1, false)))
	require.NoError(t, second.Store(touchAt(0, 0, false)))

	require.NoError(t, db.Merge(context.Background(), []*db.SQLiteStorage{first, second}, output))

	items, err := output.GatherAll()
	require.NoError(t, err)

	assert.Equal(t, []model.KeyHitCount{
		{Position: model.RowCol{Row: 0, Col: 0}, Count: 2},
		{Position: model.RowCol{Row: 0, Col: 1}, Count: 1},
	}, items)
}
