package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// ProgressService tracks which cards a user has marked as learned.
// Mark and Unmark are idempotent and return the user's fresh learned
// count, so the caller can display it without a second round trip.
type ProgressService interface {
	// MarkLearned records the card as learned for the user. Marking an
	// already-learned card is a no-op. Returns the new learned count.
	MarkLearned(ctx context.Context, userID, cardID uuid.UUID) (int, error)

	// UnmarkLearned removes the learned marker. Unmarking a card that was
	// never learned is a no-op. Returns the new learned count.
	UnmarkLearned(ctx context.Context, userID, cardID uuid.UUID) (int, error)

	// IsLearned reports whether the user has learned the card.
	IsLearned(ctx context.Context, userID, cardID uuid.UUID) (bool, error)

	// CountLearned returns the number of cards the user has learned.
	CountLearned(ctx context.Context, userID uuid.UUID) (int, error)

	// ListLearned returns the user's learned cards with card details
	// eagerly attached.
	ListLearned(ctx context.Context, userID uuid.UUID) ([]*domain.LearnedCardDetail, error)
}

// ProgressServiceImpl implements the ProgressService interface
type ProgressServiceImpl struct {
	learnedStore store.LearnedCardStore
	logger       *slog.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(learnedStore store.LearnedCardStore, logger *slog.Logger) ProgressService {
	return &ProgressServiceImpl{
		learnedStore: learnedStore,
		logger:       logger.With("component", "progress_service"),
	}
}

// MarkLearned records the card as learned and returns the new count.
func (s *ProgressServiceImpl) MarkLearned(ctx context.Context, userID, cardID uuid.UUID) (int, error) {
	if err := s.learnedStore.Mark(ctx, userID, cardID); err != nil {
		s.logger.Error("failed to mark card learned",
			"error", err,
			"user_id", userID,
			"card_id", cardID)
		return 0, err
	}

	return s.CountLearned(ctx, userID)
}

// UnmarkLearned removes the learned marker and returns the new count.
func (s *ProgressServiceImpl) UnmarkLearned(ctx context.Context, userID, cardID uuid.UUID) (int, error) {
	if err := s.learnedStore.Unmark(ctx, userID, cardID); err != nil {
		s.logger.Error("failed to unmark card learned",
			"error", err,
			"user_id", userID,
			"card_id", cardID)
		return 0, err
	}

	return s.CountLearned(ctx, userID)
}

// IsLearned reports whether the user has learned the card.
func (s *ProgressServiceImpl) IsLearned(ctx context.Context, userID, cardID uuid.UUID) (bool, error) {
	learned, err := s.learnedStore.IsLearned(ctx, userID, cardID)
	if err != nil {
		return false, fmt.Errorf("failed to check learned card: %w", err)
	}
	return learned, nil
}

// CountLearned returns the number of cards the user has learned.
func (s *ProgressServiceImpl) CountLearned(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.learnedStore.Count(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count learned cards",
			"error", err,
			"user_id", userID)
		return 0, fmt.Errorf("failed to count learned cards: %w", err)
	}
	return count, nil
}

// ListLearned returns the user's learned cards with details.
func (s *ProgressServiceImpl) ListLearned(ctx context.Context, userID uuid.UUID) ([]*domain.LearnedCardDetail, error) {
	details, err := s.learnedStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list learned cards",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list learned cards: %w", err)
	}
	return details, nil
}
