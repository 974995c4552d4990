package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"book_catalog_tgbot/config"
)

// MustInitRedis connects the client backing the per-chat catalog
// session store and panics when the ping fails.
func MustInitRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("error while connecting redis", slog.String("err", err.Error()))
		panic(err)
	}
	slog.Info("redis connected")

	return rdb
}
