package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
)

// LearnedCardStore defines the interface for the user/card learned
// association. Mark and Unmark are idempotent: concurrent duplicate-key
// rejections are absorbed as "already exists", never surfaced.
type LearnedCardStore interface {
	// Mark records that the user has learned the card. Creating an
	// association that already exists is a no-op.
	Mark(ctx context.Context, userID, cardID uuid.UUID) error

	// Unmark removes the association. Removing a missing association is
	// a no-op, not an error.
	Unmark(ctx context.Context, userID, cardID uuid.UUID) error

	// IsLearned reports whether the association exists.
	IsLearned(ctx context.Context, userID, cardID uuid.UUID) (bool, error)

	// Count returns the number of cards the user has learned.
	Count(ctx context.Context, userID uuid.UUID) (int, error)

	// ListByUser returns the user's learned associations with card
	// details eagerly attached, avoiding N+1 lookups in consumers.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LearnedCardDetail, error)

	// WithTx returns a new LearnedCardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LearnedCardStore
}
