package middleware

import (
	"net/http"
	"strings"

	"devshare/internal/auth"
	"devshare/internal/httputil"
)

// publicPaths are reachable without a token.
var publicPaths = map[string]struct{}{
	"/health": {},
}

// AuthMiddleware verifies the Bearer token on every request and stashes the
// authenticated user ID in the request context. The service treats that ID as
// an opaque identity; no authorization decisions happen here.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
