package common

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedisClient connects to REDIS_CONN_STRING. Redis is optional: without a
// connection string it stays disabled and callers fall back to no caching.
func InitRedisClient() (err error) {
	if RedisConnString == "" {
		RedisEnabled = false
		SysLog("REDIS_CONN_STRING not set, Redis is not enabled")
		return nil
	}
	opt, err := redis.ParseURL(RedisConnString)
	if err != nil {
		RedisEnabled = false
		return err
	}
	RDB = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err = RDB.Ping(ctx).Result(); err != nil {
		RedisEnabled = false
		return err
	}
	RedisEnabled = true
	SysLog("Redis is enabled")
	return nil
}

func CloseRedis() error {
	if RDB == nil {
		return nil
	}
	return RDB.Close()
}

func RedisSet(ctx context.Context, key string, value string, expiration time.Duration) error {
	return RDB.Set(ctx, key, value, expiration).Err()
}

func RedisGet(ctx context.Context, key string) (string, error) {
	return RDB.Get(ctx, key).Result()
}

func RedisExists(ctx context.Context, key string) (bool, error) {
	n, err := RDB.Exists(ctx, key).Result()
	return n > 0, err
}
