package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"book_catalog_tgbot/config"
	"book_catalog_tgbot/internal/model"
	"book_catalog_tgbot/utils"
)

// RedisSession stores one CatalogSession per chat. The catalog state
// (records, page, sort, search, open form) lives here between updates;
// handlers load it, mutate it and write it back.
type RedisSession struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisSession(cfg *config.Config, redisClient *redis.Client) *RedisSession {
	return &RedisSession{redis: redisClient, cfg: cfg}
}

func (r *RedisSession) createSessionKey(chatID int64) string {
	return fmt.Sprintf("chatID:%d:catalog", chatID)
}

func (r *RedisSession) SetSession(ctx context.Context, chatID int64, session model.CatalogSession) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("start SetSession", slog.String("rqID", rqID))

	sessionJson, err := json.Marshal(session)
	if err != nil {
		slog.Error("can't marshall session", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return errors.New("can't marshall session")
	}

	_, err = r.redis.Set(ctx, r.createSessionKey(chatID), sessionJson, r.cfg.SessionExpiration).Result()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("SetSession completed", slog.String("rqID", rqID))

	return nil
}

func (r *RedisSession) GetSession(ctx context.Context, chatID int64) (model.CatalogSession, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("start GetSession", slog.String("rqID", rqID))
	key := r.createSessionKey(chatID)

	res, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			slog.Warn("session not found in redis", slog.String("rqID", rqID))
			return model.CatalogSession{}, ErrNotFound
		}

		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return model.CatalogSession{}, err
	}

	session := model.CatalogSession{}

	err = json.Unmarshal([]byte(res), &session)
	if err != nil {
		slog.Error("can't unmarshall session", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return model.CatalogSession{}, errors.New("can't unmarshall session")
	}

	slog.Debug("GetSession completed", slog.String("rqID", rqID))

	return session, nil
}

func (r *RedisSession) DeleteSession(ctx context.Context, chatID int64) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	err := r.redis.Del(ctx, r.createSessionKey(chatID)).Err()
	if err != nil {
		slog.Error("failed on redis.Del", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.Int64("chatID", chatID))
		return err
	}
	return nil
}
