package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// CachedFetch returns the cached JSON value under key, or calls loader and
// caches its result. Cache failures are logged and degrade to a direct load —
// redis being down must never break a read path. A nil client disables
// caching entirely (unit tests).
func CachedFetch[T any](ctx context.Context, rdb *redis.Client, key string, ttl time.Duration, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if rdb == nil {
		return loader(ctx)
	}

	raw, err := rdb.Get(ctx, key).Bytes()
	if err == nil {
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		// Corrupt entry: drop it and fall through to the loader.
		rdb.Del(ctx, key)
	} else if err != redis.Nil {
		log.Warn().Str("key", key).Err(err).Msg("cache read failed")
	}

	value, err := loader(ctx)
	if err != nil {
		return zero, err
	}

	if data, jsonErr := json.Marshal(value); jsonErr == nil {
		if setErr := rdb.Set(ctx, key, data, ttl).Err(); setErr != nil {
			log.Warn().Str("key", key).Err(setErr).Msg("cache write failed")
		}
	}
	return value, nil
}

// InvalidateKeys removes cache entries after a sync refresh.
func InvalidateKeys(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Strs("keys", keys).Err(err).Msg("cache invalidation failed")
	}
}
