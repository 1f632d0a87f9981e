package domain

import (
	"time"

	"github.com/google/uuid"
)

// LearnedCard is the association marking that a user has learned a card.
// At most one association exists per (UserID, CardID) pair; the storage
// layer enforces this with a composite primary key.
type LearnedCard struct {
	UserID    uuid.UUID `json:"user_id"`
	CardID    uuid.UUID `json:"card_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LearnedCardDetail pairs the association with the card it refers to,
// loaded eagerly so consumers avoid per-row lookups.
type LearnedCardDetail struct {
	LearnedCard
	Card Card `json:"card"`
}
