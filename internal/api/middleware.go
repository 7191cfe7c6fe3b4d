/**
 * @description
 * Session authentication middleware for the admin panel.
 */
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/weblifystudio/quote-service/internal/session"
)

type contextKey string

const adminEmailContextKey = contextKey("adminEmail")

// SessionAuthMiddleware validates the bearer session token against the
// session store and injects the admin identity into the request context.
func SessionAuthMiddleware(sessions session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			sess, ok := sessions.Get(token)
			if !ok {
				http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), adminEmailContextKey, sess.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext retrieves the admin email from the request context.
func AdminFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminEmailContextKey).(string)
	return email, ok
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return "", false
	}
	return token, true
}
