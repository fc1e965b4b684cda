package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const viewKeyPrefix = "view:"

type RedisViewCacheImpl struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func CreateNewRedisViewCache(rdb redis.Cmdable, ttl time.Duration) ViewCache {
	return &RedisViewCacheImpl{rdb: rdb, ttl: ttl}
}

func (c *RedisViewCacheImpl) key(path string) string {
	return viewKeyPrefix + path
}

func (c *RedisViewCacheImpl) Get(ctx context.Context, path string, dest interface{}) (found bool, err error) {
	raw, err := c.rdb.Get(ctx, c.key(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "ViewCache.Get").Str("path", path).Msg("")
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached view %s: %w", path, err)
	}

	return true, nil
}

func (c *RedisViewCacheImpl) Set(ctx context.Context, path string, value interface{}) (err error) {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode view %s: %w", path, err)
	}

	if err = c.rdb.Set(ctx, c.key(path), b, c.ttl).Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ViewCache.Set").Str("path", path).Msg("")
	}
	return
}

func (c *RedisViewCacheImpl) Invalidate(ctx context.Context, paths ...string) (err error) {
	if len(paths) == 0 {
		return nil
	}

	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, c.key(p))
	}

	if err = c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ViewCache.Invalidate").Strs("paths", paths).Msg("")
	}
	return
}

// NoopViewCache is used when no redis is configured: every read misses.
type NoopViewCache struct{}

func (NoopViewCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NoopViewCache) Set(context.Context, string, interface{}) error         { return nil }
func (NoopViewCache) Invalidate(context.Context, ...string) error            { return nil }
