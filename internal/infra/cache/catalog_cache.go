// Package cache はカタログ一覧のキャッシュ実装。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"paintingstore/internal/domain/model"
	"paintingstore/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const catalogKey = "catalog:paintings"

// 全件をJSONで1キーに保存する
type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCatalogCache) GetPaintings(ctx context.Context) ([]model.Painting, bool, error) {
	val, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues("catalog").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var paintings []model.Painting
	if err := json.Unmarshal(val, &paintings); err != nil {
		// 壊れた値はミス扱い
		metrics.CacheMisses.WithLabelValues("catalog").Inc()
		return nil, false, err
	}
	metrics.CacheHits.WithLabelValues("catalog").Inc()
	return paintings, true, nil
}

func (c *RedisCatalogCache) SetPaintings(ctx context.Context, paintings []model.Painting) error {
	b, err := json.Marshal(paintings)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, catalogKey, b, c.ttl).Err()
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, catalogKey).Err()
}

// REDIS_ADDR未設定のとき。常にミス
type NoopCatalogCache struct{}

func (NoopCatalogCache) GetPaintings(ctx context.Context) ([]model.Painting, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) SetPaintings(ctx context.Context, paintings []model.Painting) error {
	return nil
}

func (NoopCatalogCache) Invalidate(ctx context.Context) error {
	return nil
}
