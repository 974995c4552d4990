package utils

import (
	"context"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"
)

type ctxKey string

const requestIDKey ctxKey = "rqID"

// CreateCtxWithRqID derives a context for a telegram update with a fresh
// request id, so all log lines of one update can be correlated.
func CreateCtxWithRqID(c tele.Context) context.Context {
	ctx, ok := c.Get("ctx").(context.Context)
	if !ok {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, uuid.NewString())
}

func GetRequestIDFromCtx(ctx context.Context) string {
	rqID, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return ""
	}
	return rqID
}
