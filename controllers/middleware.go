package controllers

import (
	"context"
	"net/http"
	"strings"

	"cozyconnect_server/apperror"
	"cozyconnect_server/services"
	"cozyconnect_server/utils"
)

type contextKey string

// sessionEmailKey carries the verified email of the authenticated
// session through the request context.
const sessionEmailKey contextKey = "sessionEmail"

// AuthMiddleware verifies the bearer session token and stores the
// verified email on the request context.
func AuthMiddleware(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteError(w, apperror.NewUnauthenticated("Authorization header is required"))
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				utils.WriteError(w, apperror.NewUnauthenticated("invalid token format"))
				return
			}

			claims, err := auth.ValidateToken(tokenString)
			if err != nil {
				utils.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionEmail returns the verified email placed on the context by
// AuthMiddleware.
func SessionEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(sessionEmailKey).(string)
	return email, ok && email != ""
}

// ContextWithSessionEmail is used by handler tests to simulate an
// authenticated request without a real token.
func ContextWithSessionEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, sessionEmailKey, email)
}
