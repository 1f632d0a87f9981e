package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore records the currently valid refresh token per user so
// that logout revokes it and a replayed old token is rejected. Exactly one
// refresh token is live per user at a time.
type RefreshTokenStore interface {
	// Save stores the user's current refresh token with the given lifetime,
	// replacing any previous one.
	Save(ctx context.Context, userID uuid.UUID, token string, lifetime time.Duration) error

	// Check reports whether the presented token is the user's current one.
	Check(ctx context.Context, userID uuid.UUID, token string) (bool, error)

	// Revoke removes the user's current refresh token. Revoking when none
	// is stored is a no-op.
	Revoke(ctx context.Context, userID uuid.UUID) error
}

// RedisRefreshTokenStore implements RefreshTokenStore backed by Redis.
type RedisRefreshTokenStore struct {
	client *redis.Client
}

// NewRedisRefreshTokenStore creates a RefreshTokenStore using the given client.
func NewRedisRefreshTokenStore(client *redis.Client) *RedisRefreshTokenStore {
	return &RedisRefreshTokenStore{client: client}
}

// Ensure RedisRefreshTokenStore implements RefreshTokenStore interface
var _ RefreshTokenStore = (*RedisRefreshTokenStore)(nil)

func refreshTokenKey(userID uuid.UUID) string {
	return "refresh_token:" + userID.String()
}

// Save implements RefreshTokenStore.Save
func (s *RedisRefreshTokenStore) Save(ctx context.Context, userID uuid.UUID, token string, lifetime time.Duration) error {
	if err := s.client.Set(ctx, refreshTokenKey(userID), token, lifetime).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// Check implements RefreshTokenStore.Check
func (s *RedisRefreshTokenStore) Check(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	stored, err := s.client.Get(ctx, refreshTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}
	return stored == token, nil
}

// Revoke implements RefreshTokenStore.Revoke
func (s *RedisRefreshTokenStore) Revoke(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, refreshTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
