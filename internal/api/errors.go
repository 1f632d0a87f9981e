package api

import (
	"errors"
	"net/http"

	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/service"
	"github.com/lyricdeck/lyricdeck-api/internal/service/auth"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// isPasswordPolicyError reports whether the error is one of the password
// policy violations from the domain validator.
func isPasswordPolicyError(err error) bool {
	return errors.Is(err, domain.ErrPasswordTooShort) ||
		errors.Is(err, domain.ErrPasswordTooLong) ||
		errors.Is(err, domain.ErrPasswordMissingUppercase) ||
		errors.Is(err, domain.ErrPasswordMissingLowercase) ||
		errors.Is(err, domain.ErrPasswordMissingDigit) ||
		errors.Is(err, domain.ErrPasswordContainsWhitespace) ||
		errors.Is(err, domain.ErrPasswordMissingSpecial) ||
		errors.Is(err, domain.ErrPasswordInvalidCharacter)
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongPassword):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		isPasswordPolicyError(err),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// isDomainValidationError reports whether the error is one of the entity
// validation sentinels the domain constructors return.
func isDomainValidationError(err error) bool {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrInvalidID) ||
		errors.Is(err, domain.ErrEmptyFirstName) ||
		errors.Is(err, domain.ErrEmptyLastName) ||
		errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrCardWordEmpty) ||
		errors.Is(err, domain.ErrCardTranslateEmpty) ||
		errors.Is(err, domain.ErrCardLineEmpty) ||
		errors.Is(err, domain.ErrCardTranslateLineEmpty) ||
		errors.Is(err, domain.ErrCardAlbumIDEmpty)
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	// A single message for unknown email and wrong password prevents
	// account enumeration.
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrWrongPassword):
		return "Current password is incorrect"

	case errors.Is(err, domain.ErrForbidden):
		return "You do not have permission to access this resource"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrAlbumNotFound):
		return "Album not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	// Policy and validation failures are safe to surface verbatim; the
	// caller needs the specific reason to correct the request.
	case isPasswordPolicyError(err), isDomainValidationError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes an error response using the status and message
// mappings above. When messageOverride is non-empty it replaces the mapped
// message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, messageOverride string) {
	status := MapErrorToStatusCode(err)
	message := messageOverride
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	RespondWithError(w, r, status, message)
}
