package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/receitario/v1/internal/infrastructure/security"
	apperrors "github.com/receitario/v1/pkg/errors"
)

type contextKey string

// AdminUserKey carries the authenticated admin username in the request
// context.
const AdminUserKey contextKey = "admin_user"

// Authenticate rejects requests without a valid admin bearer token
func Authenticate(auth *security.AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Missing bearer token")
				return
			}

			claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminUserKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(apperrors.ToErrorResponse(
		apperrors.NewUnauthorizedError(message), ""))
}
