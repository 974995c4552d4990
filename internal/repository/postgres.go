package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"book_catalog_tgbot/internal/model"
	"book_catalog_tgbot/utils"
)

type Postgres struct {
	db *sqlx.DB
}

func NewPostgresRepo(db *sqlx.DB) *Postgres {
	return &Postgres{db}
}

func (r *Postgres) GetPreferences(ctx context.Context, chatId int64) (model.ChatPreferences, error) {
	op := "Postgres.GetPreferences"
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `SELECT chat_id, language, page_size FROM chat_preferences WHERE chat_id = $1`

	var prefs model.ChatPreferences
	err := r.db.QueryRowxContext(ctx, query, chatId).StructScan(&prefs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn(
				"no preferences stored for chatId",
				slog.String("op", op),
				slog.String("rqID", rqID),
				slog.Int64("chatId", chatId),
			)
			return model.ChatPreferences{}, ErrNoRows
		}
		slog.Error(
			"failed to get preferences by chatId",
			slog.String("op", op),
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.Int64("chatId", chatId),
		)
		return model.ChatPreferences{}, err
	}

	return prefs, nil
}

func (r *Postgres) UpsertLanguage(ctx context.Context, chatId int64, language string) error {
	op := "Postgres.UpsertLanguage"
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `INSERT INTO chat_preferences (chat_id, language) VALUES ($1, $2)
		ON CONFLICT(chat_id) DO UPDATE SET language = EXCLUDED.language;`

	_, err := r.db.ExecContext(ctx, query, chatId, language)
	if err != nil {
		slog.Error(
			"failed to upsert language for chatId",
			slog.String("op", op),
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.Int64("chatId", chatId),
			slog.String("language", language),
		)
		return err
	}

	slog.Info(
		"language upserted",
		slog.String("op", op),
		slog.String("rqID", rqID),
		slog.Int64("chatId", chatId),
		slog.String("language", language),
	)
	return nil
}

func (r *Postgres) UpsertPageSize(ctx context.Context, chatId int64, pageSize int) error {
	op := "Postgres.UpsertPageSize"
	rqID := utils.GetRequestIDFromCtx(ctx)
	query := `INSERT INTO chat_preferences (chat_id, page_size) VALUES ($1, $2)
		ON CONFLICT(chat_id) DO UPDATE SET page_size = EXCLUDED.page_size;`

	_, err := r.db.ExecContext(ctx, query, chatId, pageSize)
	if err != nil {
		slog.Error(
			"failed to upsert page size for chatId",
			slog.String("op", op),
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.Int64("chatId", chatId),
			slog.Int("pageSize", pageSize),
		)
		return err
	}
	return nil
}
