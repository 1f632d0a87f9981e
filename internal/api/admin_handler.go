package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/service"
)

// AdminHandler serves the admin-scoped card and user management routes.
// The RequireAdmin middleware has already verified the administrator role
// before any of these handlers run.
type AdminHandler struct {
	cardService service.CardService
	userService service.UserService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(
	cardService service.CardService,
	userService service.UserService,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		cardService: cardService,
		userService: userService,
		validator:   validator.New(),
		logger:      logger.With("component", "admin_handler"),
	}
}

// ListCards handles GET /api/admin/cards.
func (h *AdminHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list cards", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to load cards")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, cards)
}

// CreateCard handles POST /api/admin/cards.
func (h *AdminHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req CardRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), service.CardParams{
		AlbumID:       req.AlbumID,
		Word:          req.Word,
		Translate:     req.Translate,
		Line:          req.Line,
		TranslateLine: req.TranslateLine,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, card)
}

// UpdateCard handles PUT /api/admin/cards/{id}.
func (h *AdminHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CardRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), id, service.CardParams{
		AlbumID:       req.AlbumID,
		Word:          req.Word,
		Translate:     req.Translate,
		Line:          req.Line,
		TranslateLine: req.TranslateLine,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/admin/cards/{id}. Deleting a missing
// card succeeds.
func (h *AdminHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to load users")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, users)
}

// GetUser handles GET /api/admin/users/{id}.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateUser handles PUT /api/admin/users/{id}, mutating identity fields
// and the role.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req AdminUserUpdateRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.AdminUpdateUser(r.Context(), id, service.AdminUserUpdate{
		ProfileUpdate: service.ProfileUpdate{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			MiddleName:  req.MiddleName,
			PhoneNumber: req.PhoneNumber,
			Email:       req.Email,
		},
		RoleID: domain.RoleID(req.RoleID),
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/{id}. Learned-card rows
// cascade with the user.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
