package service

import "errors"

// Common service-level errors.
var (
	// ErrInvalidCredentials is returned by Authenticate for both an
	// unknown email and a wrong password, so callers cannot distinguish
	// the two and enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongPassword is returned by ChangePassword when the supplied
	// current password does not match.
	ErrWrongPassword = errors.New("current password is incorrect")
)
