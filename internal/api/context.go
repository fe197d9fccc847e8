package api

import (
	"context"

	"cleanbook/internal/admin"
)

type ctxKey string

const ctxKeyAdmin ctxKey = "admin"

func WithAdmin(ctx context.Context, p *admin.Principal) context.Context {
	return context.WithValue(ctx, ctxKeyAdmin, p)
}

func AdminFromContext(ctx context.Context) *admin.Principal {
	p, _ := ctx.Value(ctxKeyAdmin).(*admin.Principal)
	return p
}
