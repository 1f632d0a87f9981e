package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lyricdeck/lyricdeck-api/internal/service"
)

// ProfileHandler handles the authenticated user's own profile: viewing it
// with learning progress, updating identity fields, and changing the
// password.
type ProfileHandler struct {
	userService     service.UserService
	progressService service.ProgressService
	validator       *validator.Validate
	logger          *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(
	userService service.UserService,
	progressService service.ProgressService,
	logger *slog.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		userService:     userService,
		progressService: progressService,
		validator:       validator.New(),
		logger:          logger.With("component", "profile_handler"),
	}
}

// GetProfile handles GET /api/profile. The response carries the learned
// cards with details and the learned count alongside the identity.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	count, err := h.progressService.CountLearned(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to count learned cards", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	learned, err := h.progressService.ListLearned(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list learned cards", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		User:         user,
		LearnedCount: count,
		LearnedCards: learned,
	})
}

// UpdateProfile handles PUT /api/profile.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		MiddleName:  req.MiddleName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Avatar:      req.Avatar,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}

// ChangePassword handles PUT /api/profile/password.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err := h.userService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
