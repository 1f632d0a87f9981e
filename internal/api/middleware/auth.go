// Package middleware provides HTTP middleware for the API: JWT
// authentication and role-based authorization.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/api/shared"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/service/auth"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates JWT tokens from the Authorization header and
// adds the user ID to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		token := parts[1]

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", err)
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Authentication error",
				)
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// AdminMiddleware gates admin-scoped routes. It loads the authenticated
// user and checks the administrator role before the handler runs, so no
// admin handler executes for an unprivileged user.
type AdminMiddleware struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewAdminMiddleware creates a new AdminMiddleware with the given dependencies.
func NewAdminMiddleware(userStore store.UserStore, logger *slog.Logger) *AdminMiddleware {
	return &AdminMiddleware{
		userStore: userStore,
		logger:    logger.With("component", "admin_middleware"),
	}
}

// RequireAdmin verifies the authenticated user holds the administrator
// role. Must be applied after Authenticate.
func (m *AdminMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		if !ok || userID == uuid.Nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := m.userStore.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			m.logger.Error("failed to load user for role check",
				"error", err,
				"user_id", userID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authorization error")
			return
		}

		if err := domain.RequireRole(user, domain.RoleAdmin); err != nil {
			m.logger.Debug("admin route denied",
				"user_id", userID,
				"role_id", user.RoleID)
			shared.RespondWithError(w, r, http.StatusForbidden,
				"You do not have permission to access this resource")
			return
		}

		ctx := context.WithValue(r.Context(), shared.CurrentUserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
