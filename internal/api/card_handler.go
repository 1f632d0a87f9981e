package api

import (
	"log/slog"
	"net/http"

	"github.com/lyricdeck/lyricdeck-api/internal/service"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// CardHandler serves the public catalog: card search and the artist/album
// reference lists, plus the authenticated learned-card endpoints.
type CardHandler struct {
	cardService     service.CardService
	progressService service.ProgressService
	logger          *slog.Logger
}

// NewCardHandler creates a new CardHandler with the given dependencies.
func NewCardHandler(
	cardService service.CardService,
	progressService service.ProgressService,
	logger *slog.Logger,
) *CardHandler {
	return &CardHandler{
		cardService:     cardService,
		progressService: progressService,
		logger:          logger.With("component", "card_handler"),
	}
}

// ListCards handles GET /api/cards. Query parameters query, artist and
// album filter the result; with none given, all cards are returned.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	filter := store.CardFilter{
		Query:  r.URL.Query().Get("query"),
		Artist: r.URL.Query().Get("artist"),
		Album:  r.URL.Query().Get("album"),
	}

	cards, err := h.cardService.Search(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to search cards", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to load cards")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, cards)
}

// GetCard handles GET /api/cards/{id}.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cardService.GetCard(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, card)
}

// ListArtists handles GET /api/artists.
func (h *CardHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.cardService.ListArtists(r.Context())
	if err != nil {
		h.logger.Error("failed to list artists", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to load artists")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, artists)
}

// ListAlbums handles GET /api/albums. An optional artist query parameter
// restricts the result to that artist's albums.
func (h *CardHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.cardService.AlbumsByArtist(r.Context(), r.URL.Query().Get("artist"))
	if err != nil {
		h.logger.Error("failed to list albums", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to load albums")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, albums)
}

// MarkLearned handles POST /api/cards/{id}/learned. Marking an already
// learned card succeeds and leaves a single association.
func (h *CardHandler) MarkLearned(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	count, err := h.progressService.MarkLearned(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, LearnedResponse{
		CardID:       cardID,
		Learned:      true,
		LearnedCount: count,
	})
}

// UnmarkLearned handles DELETE /api/cards/{id}/learned. Unmarking a card
// that was never learned is a no-op.
func (h *CardHandler) UnmarkLearned(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	count, err := h.progressService.UnmarkLearned(r.Context(), userID, cardID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, LearnedResponse{
		CardID:       cardID,
		Learned:      false,
		LearnedCount: count,
	})
}

// ListLearned handles GET /api/learned, returning the user's learned
// cards with card details attached.
func (h *CardHandler) ListLearned(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	learned, err := h.progressService.ListLearned(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list learned cards", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to load learned cards")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, learned)
}
