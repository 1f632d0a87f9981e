package domain

import (
	"errors"
	"regexp"
)

// Password policy errors. ValidatePassword returns the first rule the
// candidate password violates, in the order the rules are listed here.
var (
	ErrPasswordTooShort           = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong            = errors.New("password must be at most 128 characters long")
	ErrPasswordMissingUppercase   = errors.New("password must contain at least one uppercase letter")
	ErrPasswordMissingLowercase   = errors.New("password must contain at least one lowercase letter")
	ErrPasswordMissingDigit       = errors.New("password must contain at least one digit")
	ErrPasswordContainsWhitespace = errors.New("password must not contain whitespace")
	ErrPasswordMissingSpecial     = errors.New("password must contain at least one special character")
	ErrPasswordInvalidCharacter   = errors.New("password contains invalid characters")
)

const (
	passwordMinLength = 8
	passwordMaxLength = 128
)

// The policy accepts Latin and Cyrillic letter classes and the fixed
// special set ~!?@#$%^&*_-+()[]{}><\/|"',.:; and nothing else.
var (
	passwordUppercaseRe  = regexp.MustCompile(`[A-ZА-Я]`)
	passwordLowercaseRe  = regexp.MustCompile(`[a-zа-я]`)
	passwordDigitRe      = regexp.MustCompile(`[0-9]`)
	// \p{Zs} extends the ASCII \s class to Unicode spaces such as
	// U+00A0, so they are reported as whitespace rather than as a
	// disallowed character.
	passwordWhitespaceRe = regexp.MustCompile(`[\s\p{Zs}]`)
	passwordSpecialRe    = regexp.MustCompile(`[~!?@#$%^&*_\-+()\[\]{}><\\/|"',.:;]`)
	passwordAllowedRe    = regexp.MustCompile(`^[\p{L}\p{N}_~!?@#$%^&*_\-+()\[\]{}><\\/|"',.:;]*$`)
)

// ValidatePassword checks a candidate password against the character-class
// policy. It is a pure function of its input: no side effects, no storage
// access. The first violated rule is returned; nil means the password
// satisfies the whole policy.
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < passwordMinLength {
		return ErrPasswordTooShort
	}
	if len(runes) > passwordMaxLength {
		return ErrPasswordTooLong
	}
	if !passwordUppercaseRe.MatchString(password) {
		return ErrPasswordMissingUppercase
	}
	if !passwordLowercaseRe.MatchString(password) {
		return ErrPasswordMissingLowercase
	}
	if !passwordDigitRe.MatchString(password) {
		return ErrPasswordMissingDigit
	}
	if passwordWhitespaceRe.MatchString(password) {
		return ErrPasswordContainsWhitespace
	}
	if !passwordSpecialRe.MatchString(password) {
		return ErrPasswordMissingSpecial
	}
	if !passwordAllowedRe.MatchString(password) {
		return ErrPasswordInvalidCharacter
	}
	return nil
}
