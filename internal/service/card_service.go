package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// CardParams carries the card form fields for create and update.
type CardParams struct {
	AlbumID       uuid.UUID
	Word          string
	Translate     string
	Line          string
	TranslateLine string
}

// CardService provides the catalog operations: listing, search and
// admin-scoped card CRUD.
type CardService interface {
	// Search returns the cards matching the filter in stable id order.
	// An all-zero filter returns every card.
	Search(ctx context.Context, filter store.CardFilter) ([]*domain.Card, error)

	// GetAll returns all cards.
	GetAll(ctx context.Context) ([]*domain.Card, error)

	// GetCard retrieves a card by ID.
	GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// CreateCard creates a card. The album reference must exist.
	CreateCard(ctx context.Context, params CardParams) (*domain.Card, error)

	// UpdateCard replaces the card's fields.
	// Returns store.ErrCardNotFound if the card does not exist.
	UpdateCard(ctx context.Context, id uuid.UUID, params CardParams) (*domain.Card, error)

	// DeleteCard removes a card. Deleting a missing card is a no-op.
	DeleteCard(ctx context.Context, id uuid.UUID) error

	// ListArtists returns the distinct artist names, sorted.
	ListArtists(ctx context.Context) ([]string, error)

	// AlbumsByArtist returns the albums matching the artist exactly, or
	// all albums when artist is empty.
	AlbumsByArtist(ctx context.Context, artist string) ([]*domain.Album, error)
}

// CardServiceImpl implements the CardService interface
type CardServiceImpl struct {
	cardStore  store.CardStore
	albumStore store.AlbumStore
	logger     *slog.Logger
}

// NewCardService creates a new CardService
func NewCardService(
	cardStore store.CardStore,
	albumStore store.AlbumStore,
	logger *slog.Logger,
) CardService {
	return &CardServiceImpl{
		cardStore:  cardStore,
		albumStore: albumStore,
		logger:     logger.With("component", "card_service"),
	}
}

// Search returns the cards matching the filter.
func (s *CardServiceImpl) Search(ctx context.Context, filter store.CardFilter) ([]*domain.Card, error) {
	cards, err := s.cardStore.Search(ctx, filter)
	if err != nil {
		s.logger.Error("card search failed",
			"error", err,
			"query", filter.Query,
			"artist", filter.Artist,
			"album", filter.Album)
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}

	return cards, nil
}

// GetAll returns all cards.
func (s *CardServiceImpl) GetAll(ctx context.Context) ([]*domain.Card, error) {
	cards, err := s.cardStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list cards", "error", err)
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// GetCard retrieves a card by its ID.
func (s *CardServiceImpl) GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	card, err := s.cardStore.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrCardNotFound) {
			s.logger.Error("failed to retrieve card",
				"error", err,
				"card_id", id)
		}
		return nil, err
	}
	return card, nil
}

// CreateCard creates a new card.
func (s *CardServiceImpl) CreateCard(ctx context.Context, params CardParams) (*domain.Card, error) {
	card, err := domain.NewCard(
		params.AlbumID,
		params.Word,
		params.Translate,
		params.Line,
		params.TranslateLine,
	)
	if err != nil {
		s.logger.Debug("card creation rejected by validation", "error", err)
		return nil, err
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		if !errors.Is(err, store.ErrInvalidEntity) {
			s.logger.Error("failed to create card",
				"error", err,
				"card_id", card.ID)
		}
		return nil, err
	}

	s.logger.Info("card created",
		"card_id", card.ID,
		"word", card.Word)

	return card, nil
}

// UpdateCard replaces the card's fields.
func (s *CardServiceImpl) UpdateCard(ctx context.Context, id uuid.UUID, params CardParams) (*domain.Card, error) {
	card := &domain.Card{
		ID:            id,
		AlbumID:       params.AlbumID,
		Word:          params.Word,
		Translate:     params.Translate,
		Line:          params.Line,
		TranslateLine: params.TranslateLine,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		s.logger.Debug("card update rejected by validation",
			"error", err,
			"card_id", id)
		return nil, err
	}

	if err := s.cardStore.Update(ctx, card); err != nil {
		if !errors.Is(err, store.ErrCardNotFound) && !errors.Is(err, store.ErrInvalidEntity) {
			s.logger.Error("failed to update card",
				"error", err,
				"card_id", id)
		}
		return nil, err
	}

	s.logger.Info("card updated", "card_id", id)
	return card, nil
}

// DeleteCard removes a card. Missing ids are a no-op.
func (s *CardServiceImpl) DeleteCard(ctx context.Context, id uuid.UUID) error {
	if err := s.cardStore.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete card",
			"error", err,
			"card_id", id)
		return err
	}

	s.logger.Info("card deleted", "card_id", id)
	return nil
}

// ListArtists returns the distinct artist names, sorted.
func (s *CardServiceImpl) ListArtists(ctx context.Context) ([]string, error) {
	artists, err := s.albumStore.ListArtists(ctx)
	if err != nil {
		s.logger.Error("failed to list artists", "error", err)
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

// AlbumsByArtist returns the albums for an artist, or all albums when the
// artist is empty.
func (s *CardServiceImpl) AlbumsByArtist(ctx context.Context, artist string) ([]*domain.Album, error) {
	albums, err := s.albumStore.ListByArtist(ctx, artist)
	if err != nil {
		s.logger.Error("failed to list albums",
			"error", err,
			"artist", artist)
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	return albums, nil
}
