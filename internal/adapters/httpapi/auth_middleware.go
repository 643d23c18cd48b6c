package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// NewAdminTokenMiddleware guards report routes with a static bearer token.
//
// An empty token disables the check entirely, which is the intended setup for
// local development; production deployments configure http.admin_token.
func NewAdminTokenMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			authz := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(authz, prefix) {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, prefix))
			if subtle.ConstantTimeCompare([]byte(raw), []byte(token)) != 1 {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
