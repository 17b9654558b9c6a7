package repository

import (
	"context"

	"github.com/google/uuid"
)

var idempKeyCtx idempotencyKey = "idempKey"

type idempotencyKey string

func idempotencyKeyFromCtxOrRandom(ctx context.Context) string {
	if val, ok := ctx.Value(idempKeyCtx).(string); ok {
		return val
	}
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return id.String()
}

// ContextWithIdempotencyKey makes the message IDs of a Save derive from
// key, so saving the same changes again with the same key stores nothing
// new. One key covers one command: a different command saved under a key
// that was already used is dropped as a duplicate.
func ContextWithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempKeyCtx, key)
}
