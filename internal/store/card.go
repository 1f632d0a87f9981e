package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
)

// CardFilter restricts a card search. Zero-valued fields are absent
// filters; present filters combine with logical AND.
type CardFilter struct {
	// Query keeps cards whose word, translation, or song line contains
	// it as a substring.
	Query string

	// Artist and Album restrict cards to albums where artist = Artist OR
	// album_name = Album. When either is set and no album matches, the
	// restriction is empty and the search yields no cards.
	Artist string
	Album  string
}

// IsZero reports whether no filter argument was given at all.
func (f CardFilter) IsZero() bool {
	return f.Query == "" && f.Artist == "" && f.Album == ""
}

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store.
	// Returns ErrInvalidEntity if the album reference does not exist.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetAll returns all cards in stable id order.
	GetAll(ctx context.Context) ([]*domain.Card, error)

	// Search returns the cards matching the filter in stable id order.
	// An all-zero filter returns every card.
	Search(ctx context.Context, filter CardFilter) ([]*domain.Card, error)

	// Update modifies an existing card.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card by its ID. Deleting a missing card is a
	// no-op, not an error. Learned-card associations cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CardStore
}

// AlbumStore defines read access to the album reference data.
type AlbumStore interface {
	// GetByID retrieves an album by its unique ID.
	// Returns ErrAlbumNotFound if the album does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Album, error)

	// GetAll returns all albums.
	GetAll(ctx context.Context) ([]*domain.Album, error)

	// ListArtists returns the distinct artist names, sorted.
	ListArtists(ctx context.Context) ([]string, error)

	// ListByArtist returns the albums matching the artist exactly, or all
	// albums when artist is empty.
	ListByArtist(ctx context.Context, artist string) ([]*domain.Album, error)
}
