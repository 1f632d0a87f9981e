package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User validation errors.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyFirstName      = errors.New("first name cannot be empty")
	ErrEmptyLastName       = errors.New("last name cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the application. The plaintext
// Password field is only populated transiently during registration or a
// password change and is never persisted or serialized.
type User struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	MiddleName     string    `json:"middle_name,omitempty"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, transient
	HashedPassword string    `json:"-"` // Never expose the hash in JSON
	RoleID         RoleID    `json:"role_id"`
	Avatar         string    `json:"avatar,omitempty"` // Stored file reference
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User from registration fields. It generates the ID,
// assigns the default non-admin role and sets timestamps. The plaintext
// password is validated against the password policy here; hashing is the
// caller's responsibility.
func NewUser(firstName, lastName, middleName, phoneNumber, email, password string) (*User, error) {
	user := &User{
		ID:          uuid.New(),
		FirstName:   firstName,
		LastName:    lastName,
		MiddleName:  middleName,
		PhoneNumber: phoneNumber,
		Email:       email,
		Password:    password,
		RoleID:      RoleUser,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.FirstName == "" {
		return ErrEmptyFirstName
	}

	if u.LastName == "" {
		return ErrEmptyLastName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		// A plaintext password is present during registration or a
		// password change; hold it to the policy.
		if err := ValidatePassword(u.Password); err != nil {
			return err
		}
	} else if u.HashedPassword == "" {
		// Users loaded from storage carry only the hash.
		return ErrEmptyHashedPassword
	}

	return nil
}

// validateEmailFormat performs basic validation of email format: a single
// local part, an @, and a domain containing an interior dot. Full RFC 5322
// validation is left to the request-level validator.
func validateEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domain := email[atIndex+1:]
	dotIndex := strings.IndexByte(domain, '.')
	return dotIndex > 0 && dotIndex < len(domain)-1
}
