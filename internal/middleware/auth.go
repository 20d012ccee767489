// Package middleware provides HTTP middleware for authentication,
// rate limiting and cross-origin request handling.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/olegiv/scms-go/internal/auth"
)

// ContextKey is the type for request context keys set by middleware.
type ContextKey string

// ContextKeyUsername is the context key for the authenticated admin username.
const ContextKeyUsername ContextKey = "username"

// writeAuthError writes a JSON 401/403 without detailing the cause.
func writeAuthError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}

// RequireAuth creates middleware that validates the admin bearer token.
// All mutating content routes sit behind it.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				writeAuthError(w, http.StatusUnauthorized, "Invalid Authorization header format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUsername, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsername retrieves the authenticated admin username from the
// request context. Returns "" when the request is unauthenticated.
func GetUsername(r *http.Request) string {
	username, _ := r.Context().Value(ContextKeyUsername).(string)
	return username
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Real-IP header (set by reverse proxies)
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	// X-Forwarded-For can contain multiple IPs; take the first one
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}

	return r.RemoteAddr
}
