// Package shared holds helpers used across API handlers and middleware.
package shared

// ContextKey is the private key type for request-context values set by the
// API middleware. A private type prevents collisions with other packages.
type ContextKey string

const (
	// UserIDContextKey carries the authenticated user's uuid.UUID.
	UserIDContextKey ContextKey = "user_id"

	// CurrentUserContextKey carries the authenticated *domain.User once a
	// middleware has loaded it (admin routes).
	CurrentUserContextKey ContextKey = "current_user"
)
