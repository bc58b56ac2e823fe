package utils

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"tinyblog/config"
)

// NewRedisClient builds a Redis client from configuration. Connectivity is
// probed once; failures are tolerated because every cache path degrades to a
// database read.
func NewRedisClient(cfg config.AppConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		Sugar.Warnf("redis unreachable at %s:%d, caching degrades to direct reads: %v", cfg.RedisHost, cfg.RedisPort, err)
	}
	return client
}
