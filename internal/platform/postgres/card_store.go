package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/platform/logger"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// CardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type CardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewCardStore(db store.DBTX, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

const cardColumns = `id, album_id, word, translate, line, translate_line, created_at, updated_at`

// Create implements store.CardStore.Create
// Returns store.ErrInvalidEntity when the album reference does not exist.
func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO cards (id, album_id, word, translate, line, translate_line, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.AlbumID,
		card.Word,
		card.Translate,
		card.Line,
		card.TranslateLine,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("card references missing album",
				slog.String("album_id", card.AlbumID.String()))
			return fmt.Errorf("%w: album does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return fmt.Errorf("failed to create card: %w", err)
	}

	return nil
}

// GetByID implements store.CardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist.
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	var card domain.Card
	err := scanCard(s.db.QueryRowContext(ctx, query, id), &card)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return &card, nil
}

// GetAll implements store.CardStore.GetAll
func (s *CardStore) GetAll(ctx context.Context) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY id`
	return s.queryCards(ctx, query)
}

// Search implements store.CardStore.Search
//
// The text filter keeps cards where word, translate, or line contains the
// query as a substring. The artist/album filter first resolves albums
// matching whichever of the two names is present, OR-ed when both are;
// when either is given and no album matches, the restriction is empty
// and the search returns no cards at all. Present filters combine with
// AND; an all-zero filter returns every card in id order.
func (s *CardStore) Search(ctx context.Context, filter store.CardFilter) ([]*domain.Card, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Query != "" {
		args = append(args, filter.Query)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(strpos(word, $%d) > 0 OR strpos(translate, $%d) > 0 OR strpos(line, $%d) > 0)`,
			n, n, n,
		))
	}

	if filter.Artist != "" || filter.Album != "" {
		albumIDs, err := s.resolveAlbumIDs(ctx, filter.Artist, filter.Album)
		if err != nil {
			return nil, err
		}
		if len(albumIDs) == 0 {
			// The album restriction matched nothing; the intersection
			// is empty regardless of the other filters.
			return []*domain.Card{}, nil
		}

		placeholders := make([]string, len(albumIDs))
		for i, id := range albumIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conditions = append(conditions,
			fmt.Sprintf("album_id IN (%s)", strings.Join(placeholders, ", ")))
	}

	query := `SELECT ` + cardColumns + ` FROM cards`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	return s.queryCards(ctx, query, args...)
}

// resolveAlbumIDs collects the ids of albums matching the artist or album
// name exactly. Only the arms for non-empty values are queried, so an
// album row whose name happens to be empty never matches an artist-only
// filter.
func (s *CardStore) resolveAlbumIDs(ctx context.Context, artist, album string) ([]uuid.UUID, error) {
	var (
		arms []string
		args []any
	)
	if artist != "" {
		args = append(args, artist)
		arms = append(arms, fmt.Sprintf("artist = $%d", len(args)))
	}
	if album != "" {
		args = append(args, album)
		arms = append(arms, fmt.Sprintf("album_name = $%d", len(args)))
	}

	query := `SELECT id FROM albums WHERE ` + strings.Join(arms, " OR ")
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve albums: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan album id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate album ids: %w", err)
	}

	return ids, nil
}

// Update implements store.CardStore.Update
// Returns store.ErrCardNotFound if the card does not exist.
func (s *CardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE cards
		SET album_id = $2, word = $3, translate = $4, line = $5, translate_line = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.AlbumID,
		card.Word,
		card.Translate,
		card.Line,
		card.TranslateLine,
		card.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: album does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return fmt.Errorf("failed to update card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// Delete implements store.CardStore.Delete
// Deleting a missing card is a no-op, not an error. Learned-card
// associations cascade via the schema's ON DELETE CASCADE.
func (s *CardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return fmt.Errorf("failed to delete card: %w", err)
	}

	return nil
}

// WithTx implements store.CardStore.WithTx
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &CardStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *CardStore) queryCards(ctx context.Context, query string, args ...any) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cards := []*domain.Card{}
	for rows.Next() {
		var card domain.Card
		if err := scanCard(rows, &card); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}

func scanCard(row rowScanner, card *domain.Card) error {
	return row.Scan(
		&card.ID,
		&card.AlbumID,
		&card.Word,
		&card.Translate,
		&card.Line,
		&card.TranslateLine,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
}
