package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/config"
	"github.com/lyricdeck/lyricdeck-api/internal/service"
	"github.com/lyricdeck/lyricdeck-api/internal/service/auth"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService  service.UserService
	jwtService   auth.JWTService
	refreshStore auth.RefreshTokenStore
	refreshTTL   time.Duration
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	refreshStore auth.RefreshTokenStore,
	authCfg *config.AuthConfig,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		jwtService:   jwtService,
		refreshStore: refreshStore,
		refreshTTL:   time.Duration(authCfg.RefreshTokenLifetimeMinutes) * time.Minute,
		validator:    validator.New(),
		logger:       logger.With("component", "auth_handler"),
	}
}

// Register handles the /api/auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		MiddleName:  req.MiddleName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
		Avatar:      req.Avatar,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		if isPasswordPolicyError(err) || isDomainValidationError(err) {
			RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to register user", "error", err, "email", req.Email)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	tokens, err := h.issueTokens(r, user.ID)
	if err != nil {
		h.logger.Error("failed to issue tokens", "error", err, "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, tokens)
}

// Login handles the /api/auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("failed to authenticate user", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	tokens, err := h.issueTokens(r, user.ID)
	if err != nil {
		h.logger.Error("failed to issue tokens", "error", err, "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, tokens)
}

// RefreshToken handles the /api/auth/refresh endpoint. The presented
// refresh token must match the one stored for the user; rotation replaces
// it so a replayed old token is rejected.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	current, err := h.refreshStore.Check(r.Context(), claims.UserID, req.RefreshToken)
	if err != nil {
		h.logger.Error("failed to check refresh token", "error", err, "user_id", claims.UserID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to refresh token")
		return
	}
	if !current {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	tokens, err := h.issueTokens(r, claims.UserID)
	if err != nil {
		h.logger.Error("failed to issue tokens", "error", err, "user_id", claims.UserID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, tokens)
}

// Logout handles the /api/auth/logout endpoint by revoking the user's
// refresh token. The access token expires on its own.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.refreshStore.Revoke(r.Context(), userID); err != nil {
		h.logger.Error("failed to revoke refresh token", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to log out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// issueTokens generates an access/refresh token pair and stores the
// refresh token as the user's current one.
func (h *AuthHandler) issueTokens(r *http.Request, userID uuid.UUID) (*AuthResponse, error) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		return nil, err
	}

	if err := h.refreshStore.Save(r.Context(), userID, refreshToken, h.refreshTTL); err != nil {
		return nil, err
	}

	return &AuthResponse{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
