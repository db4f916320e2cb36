// Package cache wraps Redis for read-through caching of hot values,
// most importantly per-user token balances. All helpers degrade to
// no-ops when Redis is not connected so the app stays usable without it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/risewynn/qellum/config"
)

var RDB *redis.Client
var Ctx = context.Background()

// Connect opens the Redis connection and verifies it with a ping.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: connect %s: %w", config.RedisAddr(), err)
	}

	return nil
}

// Close shuts the Redis connection down.
func Close() {
	if RDB != nil {
		RDB.Close() //nolint:errcheck
		RDB = nil
	}
}

// Get loads a cached JSON value into dest. Returns false on miss,
// unmarshal failure, or when Redis is not connected.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Set stores a value as JSON with the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Forget removes one or more keys. Used to invalidate a user's cached
// balance after any ledger mutation.
func Forget(keys ...string) error {
	if RDB == nil || len(keys) == 0 {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}
