package db

import (
	"context"
	"testing"

	"paintingstore/internal/config"
	"paintingstore/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAndDestroy(t *testing.T) {
	cfg := config.Config{DBDriver: "sqlite", SQLitePath: "file:seed_test?mode=memory&cache=shared"}
	gdb, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	ctx := context.Background()

	n, err := Seed(ctx, gdb)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// 2回目は何も入らない
	n, err = Seed(ctx, gdb)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var count int64
	require.NoError(t, gdb.Model(&model.Painting{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	require.NoError(t, Destroy(ctx, gdb))
	require.NoError(t, gdb.Model(&model.Painting{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
