package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card validation errors.
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardAlbumIDEmpty is returned when a card's album ID is empty or nil.
	ErrCardAlbumIDEmpty = errors.New("card album ID cannot be empty")

	// ErrCardWordEmpty is returned when a card's word is empty.
	ErrCardWordEmpty = errors.New("card word cannot be empty")

	// ErrCardTranslateEmpty is returned when a card's translation is empty.
	ErrCardTranslateEmpty = errors.New("card translation cannot be empty")

	// ErrCardLineEmpty is returned when a card's song line is empty.
	ErrCardLineEmpty = errors.New("card line cannot be empty")

	// ErrCardTranslateLineEmpty is returned when a card's line translation is empty.
	ErrCardTranslateLineEmpty = errors.New("card line translation cannot be empty")
)

// Card represents a vocabulary flashcard tied to a song line and its
// translation. Every card belongs to exactly one album.
type Card struct {
	ID            uuid.UUID `json:"id"`
	AlbumID       uuid.UUID `json:"album_id"`
	Word          string    `json:"word"`
	Translate     string    `json:"translate"`
	Line          string    `json:"line"`
	TranslateLine string    `json:"translate_line"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCard creates a new Card for the given album. It generates a new UUID
// for the card ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewCard(albumID uuid.UUID, word, translate, line, translateLine string) (*Card, error) {
	card := &Card{
		ID:            uuid.New(),
		AlbumID:       albumID,
		Word:          word,
		Translate:     translate,
		Line:          line,
		TranslateLine: translateLine,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.AlbumID == uuid.Nil {
		return ErrCardAlbumIDEmpty
	}

	if c.Word == "" {
		return ErrCardWordEmpty
	}

	if c.Translate == "" {
		return ErrCardTranslateEmpty
	}

	if c.Line == "" {
		return ErrCardLineEmpty
	}

	if c.TranslateLine == "" {
		return ErrCardTranslateLineEmpty
	}

	return nil
}

// Album is a reference grouping of cards by artist and release. Albums are
// immutable reference data: there is no album CRUD surface.
type Album struct {
	ID        uuid.UUID `json:"id"`
	AlbumName string    `json:"album_name"`
	Artist    string    `json:"artist"`
}
