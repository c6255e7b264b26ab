package main

import (
	"context"
	"testing"

	"paintingstore/internal/config"
	"paintingstore/internal/infra/cache"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	log := newLogger(config.Config{GoEnv: "prod", LogLevel: "debug"})
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = newLogger(config.Config{GoEnv: "dev", LogLevel: "loud"})
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewCatalogCache_NoRedis(t *testing.T) {
	log, _ := test.NewNullLogger()
	c, closeFn := newCatalogCache(context.Background(), config.Config{}, log)
	defer closeFn()
	assert.IsType(t, cache.NoopCatalogCache{}, c)
}
