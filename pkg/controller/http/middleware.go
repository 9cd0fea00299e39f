package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/meetingtax/meetingtax/pkg/domain/model/auth"
	"github.com/meetingtax/meetingtax/pkg/usecase"
)

// bearerToken extracts the session token from the Authorization
// header. Empty string when absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// authMiddleware resolves the session token to its user once per
// request and stores the user in the request context.
func authMiddleware(authUC *usecase.AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(r.Context(), w, goerr.Wrap(usecase.ErrUnauthenticated, "missing bearer token"))
				return
			}

			user, err := authUC.ValidateSession(r.Context(), token)
			if err != nil {
				writeError(r.Context(), w, err)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
