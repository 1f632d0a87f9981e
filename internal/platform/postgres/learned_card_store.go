package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/platform/logger"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// LearnedCardStore implements the store.LearnedCardStore interface
// using a PostgreSQL database as the storage backend.
type LearnedCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLearnedCardStore creates a new PostgreSQL implementation of the
// LearnedCardStore interface.
func NewLearnedCardStore(db store.DBTX, logger *slog.Logger) *LearnedCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LearnedCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "learned_card_store")),
	}
}

// Ensure LearnedCardStore implements store.LearnedCardStore interface
var _ store.LearnedCardStore = (*LearnedCardStore)(nil)

// Mark implements store.LearnedCardStore.Mark
// ON CONFLICT DO NOTHING makes the operation idempotent: a concurrent
// duplicate insert is absorbed as "already learned", never surfaced.
func (s *LearnedCardStore) Mark(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO learned_cards (user_id, card_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, card_id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query, userID, cardID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			// Raced with another mark; the association exists, which is
			// the requested outcome.
			return nil
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user or card does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to mark card learned",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return fmt.Errorf("failed to mark card learned: %w", err)
	}

	return nil
}

// Unmark implements store.LearnedCardStore.Unmark
// Removing a missing association is a no-op, not an error.
func (s *LearnedCardStore) Unmark(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM learned_cards WHERE user_id = $1 AND card_id = $2`, userID, cardID)
	if err != nil {
		log.Error("failed to unmark card learned",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return fmt.Errorf("failed to unmark card learned: %w", err)
	}

	return nil
}

// IsLearned implements store.LearnedCardStore.IsLearned
func (s *LearnedCardStore) IsLearned(ctx context.Context, userID, cardID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM learned_cards WHERE user_id = $1 AND card_id = $2)`,
		userID, cardID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check learned card: %w", err)
	}

	return exists, nil
}

// Count implements store.LearnedCardStore.Count
func (s *LearnedCardStore) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM learned_cards WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count learned cards: %w", err)
	}

	return count, nil
}

// ListByUser implements store.LearnedCardStore.ListByUser
// Card details are fetched in the same query to avoid N+1 lookups.
func (s *LearnedCardStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LearnedCardDetail, error) {
	query := `
		SELECT lc.user_id, lc.card_id, lc.created_at,
			c.id, c.album_id, c.word, c.translate, c.line, c.translate_line,
			c.created_at, c.updated_at
		FROM learned_cards lc
		JOIN cards c ON c.id = lc.card_id
		WHERE lc.user_id = $1
		ORDER BY lc.created_at, lc.card_id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learned cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	details := []*domain.LearnedCardDetail{}
	for rows.Next() {
		var d domain.LearnedCardDetail
		err := rows.Scan(
			&d.UserID,
			&d.CardID,
			&d.CreatedAt,
			&d.Card.ID,
			&d.Card.AlbumID,
			&d.Card.Word,
			&d.Card.Translate,
			&d.Card.Line,
			&d.Card.TranslateLine,
			&d.Card.CreatedAt,
			&d.Card.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan learned card: %w", err)
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate learned cards: %w", err)
	}

	return details, nil
}

// WithTx implements store.LearnedCardStore.WithTx
func (s *LearnedCardStore) WithTx(tx *sql.Tx) store.LearnedCardStore {
	return &LearnedCardStore{
		db:     tx,
		logger: s.logger,
	}
}
