package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/clubkitlabs/clubkit/internal/config"
	"github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) *CellCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.Config{}
	cfg.Redis.CellCacheTTLSeconds = 60
	return New(rdb, cfg, zap.NewNop())
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	cells := []domain.PriceCell{
		{ID: 7, LocationID: 3, PlanName: "Gold", Role: domain.RolePrimary, AgeGroupID: 1, TermID: 2, Price: 42.5, Active: true},
	}
	c.Set(ctx, 3, cells)

	got, ok := c.Get(ctx, 3)
	require.True(t, ok)
	assert.Equal(t, cells, got)
}

func TestCacheMissAfterInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 3, []domain.PriceCell{{ID: 1}})
	c.Invalidate(ctx, 3)

	_, ok := c.Get(ctx, 3)
	assert.False(t, ok)
}

func TestCacheKeysArePerLocation(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 1, []domain.PriceCell{{ID: 1}})
	c.Set(ctx, 2, []domain.PriceCell{{ID: 2}})
	c.Invalidate(ctx, 1)

	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	got, ok := c.Get(ctx, 2)
	require.True(t, ok)
	assert.EqualValues(t, 2, got[0].ID)
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *CellCache
	ctx := context.Background()

	c.Set(ctx, 1, nil)
	c.Invalidate(ctx, 1)
	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
}
