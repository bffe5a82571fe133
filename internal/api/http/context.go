package http

import (
	"context"

	"github.com/taskden/taskden/internal/api/domain"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

func contextWithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

// userFromContext returns the authenticated user attached by the session
// middleware. The second return is false on unprotected routes.
func userFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}
