package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clubkitlabs/clubkit/internal/config"
	"github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CellCache is a read-through cache of per-location price cell lists.
// Every successful mutation invalidates the location's entry, so other
// replicas never serve a list older than the TTL.
type CellCache struct {
	rdb *redis.Client
	log *zap.Logger
	ttl time.Duration
}

func New(rdb *redis.Client, cfg config.Config, log *zap.Logger) *CellCache {
	return &CellCache{
		rdb: rdb,
		log: log.Named("pricing.cache"),
		ttl: time.Duration(cfg.Redis.CellCacheTTLSeconds) * time.Second,
	}
}

func cellsKey(locationID int64) string {
	return fmt.Sprintf("pricing:cells:%d", locationID)
}

func (c *CellCache) Get(ctx context.Context, locationID int64) ([]domain.PriceCell, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cellsKey(locationID)).Bytes()
	if err != nil {
		return nil, false
	}
	var cells []domain.PriceCell
	if err := json.Unmarshal(raw, &cells); err != nil {
		c.log.Warn("corrupt cell cache entry", zap.Int64("location_id", locationID), zap.Error(err))
		return nil, false
	}
	return cells, true
}

func (c *CellCache) Set(ctx context.Context, locationID int64, cells []domain.PriceCell) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(cells)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cellsKey(locationID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cell cache set failed", zap.Int64("location_id", locationID), zap.Error(err))
	}
}

func (c *CellCache) Invalidate(ctx context.Context, locationID int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, cellsKey(locationID)).Err(); err != nil {
		c.log.Warn("cell cache invalidate failed", zap.Int64("location_id", locationID), zap.Error(err))
	}
}
