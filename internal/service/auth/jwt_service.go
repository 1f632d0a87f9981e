// Package auth provides authentication primitives: password hashing,
// JWT issuance and validation, and refresh-token storage.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Claims holds the validated identity extracted from a token.
type Claims struct {
	UserID uuid.UUID
	// TokenID is the unique identifier (jti) of the token, used to key
	// refresh-token revocation state.
	TokenID string
}

// JWTService defines the interface for generating and validating tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// GenerateRefreshToken creates a signed refresh token for the user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates an access token and returns its claims.
	// Returns ErrExpiredToken, ErrInvalidToken, or ErrWrongTokenType.
	ValidateToken(ctx context.Context, token string) (*Claims, error)

	// ValidateRefreshToken validates a refresh token and returns its claims.
	// Returns ErrExpiredRefreshToken, ErrInvalidRefreshToken, or ErrWrongTokenType.
	ValidateRefreshToken(ctx context.Context, token string) (*Claims, error)
}
