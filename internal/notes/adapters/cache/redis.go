// Package cache содержит реализацию кэша представлений на Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	portcache "deltanote/internal/notes/ports/cache"
	redisdb "deltanote/pkg/db/redis"
	"deltanote/pkg/logger"
)

// Константы для логирования.
const (
	ErrorFailedToGet        = "failed to get view from redis"
	ErrorFailedToSet        = "failed to set view in redis"
	ErrorFailedToInvalidate = "failed to invalidate views in redis"
	ErrorFailedToClose      = "failed to close redis connection"
)

// RedisViewCache реализует интерфейс ViewCache с использованием Redis.
type RedisViewCache struct {
	client     *redisdb.Client
	defaultTTL time.Duration
}

// NewRedisViewCache создает кэш представлений поверх клиента Redis.
func NewRedisViewCache(client *redisdb.Client, defaultTTL time.Duration) portcache.ViewCache {
	return &RedisViewCache{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

// Get получает представление по ключу. Промах - не ошибка.
func (c *RedisViewCache) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "RedisViewCache.Get"), zap.String("key", key))

	value, err := c.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	return value, true, nil
}

// Set сохраняет представление с временем жизни.
func (c *RedisViewCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", "RedisViewCache.Set"), zap.String("key", key))

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, key, value, ttl); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Invalidate удаляет указанные ключи представлений.
func (c *RedisViewCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	log := logger.Log(ctx).With(zap.String("method", "RedisViewCache.Invalidate"), zap.Strings("keys", keys))

	if err := c.client.Delete(ctx, keys...); err != nil {
		log.Error(ctx, ErrorFailedToInvalidate, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToInvalidate, err)
	}

	log.Debug(ctx, "views invalidated")
	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisViewCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
