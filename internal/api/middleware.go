package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cleanbook/internal/admin"
)

// ErrUnauthenticated marks an Authenticate failure caused by the caller's token or
// session. Any other error is treated as an internal failure.
var ErrUnauthenticated = errors.New("unauthenticated")

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*admin.Principal, error)
}

// AdminAuth requires `Authorization: Bearer <token>` backed by a live server-side session.
func AdminAuth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
				return
			}

			p, err := authn.Authenticate(r.Context(), token)
			if errors.Is(err, ErrUnauthenticated) {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired session")
				return
			}
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "INTERNAL", "could not verify session")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), p)))
		})
	}
}

func BearerToken(r *http.Request) string {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authz) < 7 || !strings.EqualFold(authz[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[7:])
}
