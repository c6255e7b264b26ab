package main

import (
	"context"
	"time"

	"paintingstore/internal/config"
	"paintingstore/internal/infra/cache"
	"paintingstore/internal/infra/db"
	"paintingstore/internal/usecase"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 本番はJSON、それ以外はテキスト
func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.IsProd() {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// 設定読み込みとDB接続
func bootDB() (config.Config, *gorm.DB, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	log := newLogger(cfg)

	gdb, err := db.Connect(cfg)
	if err != nil {
		return cfg, nil, log, err
	}
	return cfg, gdb, log, nil
}

// REDIS_ADDRが空、または繋がらなければキャッシュなしで動かす
func newCatalogCache(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (usecase.CatalogCache, func()) {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, catalog cache disabled")
		return cache.NoopCatalogCache{}, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable, catalog cache disabled")
		_ = rdb.Close()
		return cache.NoopCatalogCache{}, func() {}
	}

	log.WithField("addr", cfg.RedisAddr).Info("connected to redis")
	return cache.NewRedisCatalogCache(rdb, cfg.CatalogCacheTTL), func() { _ = rdb.Close() }
}
