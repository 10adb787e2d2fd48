package middleware

import (
	"context"
	"net/http"
	"strings"

	"hangouts-backend/internal/services"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware creates a middleware that verifies the bearer token and puts
// the decoded identity into the request context
func AuthMiddleware(userService *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "Missing Bearer token", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			identity, err := userService.ValidateToken(parts[1])
			if err != nil {
				respondError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the verified identity from context
func GetIdentity(ctx context.Context) *services.Identity {
	identity, ok := ctx.Value(identityKey).(*services.Identity)
	if !ok {
		return nil
	}
	return identity
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
