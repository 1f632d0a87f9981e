package api

import (
	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// The password policy itself is enforced by the domain validator; the
// struct tags only cover form-level requirements.
type RegisterRequest struct {
	FirstName       string `json:"first_name"       validate:"required,max=50"`
	LastName        string `json:"last_name"        validate:"required,max=50"`
	MiddleName      string `json:"middle_name"      validate:"max=50"`
	PhoneNumber     string `json:"phone_number"     validate:"required,min=10,max=20"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Avatar          string `json:"avatar"           validate:"max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name"   validate:"required,max=50"`
	LastName    string `json:"last_name"    validate:"required,max=50"`
	MiddleName  string `json:"middle_name"  validate:"max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=20"`
	Email       string `json:"email"        validate:"required,email"`
	Avatar      string `json:"avatar"       validate:"max=100"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password"     validate:"required"`
	NewPassword        string `json:"new_password"         validate:"required"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,eqfield=NewPassword"`
}

// ProfileResponse combines the user's identity with their learning progress.
type ProfileResponse struct {
	User         *domain.User                `json:"user"`
	LearnedCount int                         `json:"learned_count"`
	LearnedCards []*domain.LearnedCardDetail `json:"learned_cards"`
}

// CardRequest defines the payload for admin card create/update endpoints.
type CardRequest struct {
	AlbumID       uuid.UUID `json:"album_id"       validate:"required"`
	Word          string    `json:"word"           validate:"required,max=100"`
	Translate     string    `json:"translate"      validate:"required,max=100"`
	Line          string    `json:"line"           validate:"required"`
	TranslateLine string    `json:"translate_line" validate:"required"`
}

// AdminUserUpdateRequest defines the payload for the admin user update endpoint.
type AdminUserUpdateRequest struct {
	FirstName   string `json:"first_name"   validate:"required,max=50"`
	LastName    string `json:"last_name"    validate:"required,max=50"`
	MiddleName  string `json:"middle_name"  validate:"max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=20"`
	Email       string `json:"email"        validate:"required,email"`
	RoleID      int    `json:"role_id"      validate:"required,gt=0"`
}

// LearnedResponse reports the outcome of a learned-card toggle together
// with the user's fresh learned count.
type LearnedResponse struct {
	CardID       uuid.UUID `json:"card_id"`
	Learned      bool      `json:"learned"`
	LearnedCount int       `json:"learned_count"`
}
