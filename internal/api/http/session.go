package http

import (
	"errors"
	"net/http"

	"github.com/taskden/taskden/internal/api/service"
	"github.com/taskden/taskden/pkg/httpx"
	"github.com/taskden/taskden/pkg/jwtx"
	"github.com/taskden/taskden/pkg/slogx"
)

// SessionMiddleware authenticates requests from the session cookie. The
// policy is re-fetch: after the token verifies, the user record is loaded
// fresh from the store, so a user deleted after token issuance no longer
// authenticates. The decoded claim is never attached directly.
func SessionMiddleware(verifier jwtx.Verifier, auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(httpx.SessionCookieName)
			if err != nil || cookie.Value == "" {
				errTokenMissing.WriteError(w)
				return
			}

			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				log.Warn("session token rejected", "err", err)
				errUnauthorized.WriteError(w)
				return
			}

			user, err := auth.GetUserByID(ctx, claims.Subject)
			if err != nil {
				if errors.Is(err, service.ErrUserNotFound) {
					log.Warn("session token for missing user", "user_id", claims.Subject)
					errUnauthorized.WriteError(w)
					return
				}
				log.Error("identity resolution failed", "err", err)
				errServer.WriteError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithUser(ctx, user)))
		})
	}
}
