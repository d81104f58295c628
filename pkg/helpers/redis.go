package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// versionTTL bounds how long an invalidation counter outlives its last bump.
// It only has to cover reads that were in flight at that moment.
const versionTTL = time.Hour

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisCache adapts a redis client to the application's entity cache.
// Each key has a sibling "<key>:ver" counter bumped on invalidation.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func versionKey(key string) string { return key + ":ver" }

// GetJSON decodes the cached value into dest. A missing key reports false, nil.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	res, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Version(ctx context.Context, key string) (int64, error) {
	return readVersion(ctx, c.rdb, key)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, cmd getter, key string) (int64, error) {
	v, err := cmd.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetJSONAt writes value under WATCH on the version key, so an Invalidate landing
// between the check and the write aborts the transaction instead of being overwritten.
func (c *RedisCache) SetJSONAt(ctx context.Context, key string, value any, ttl time.Duration, version int64) (bool, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	stored := false
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if cur != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, versionKey(key))
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// Invalidate bumps every version counter and deletes the values in one MULTI.
func (c *RedisCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, versionKey(k))
			pipe.Expire(ctx, versionKey(k), versionTTL)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}
