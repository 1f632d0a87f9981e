package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Anna", "Petrova", "", "+7900000001", "anna@example.com", "Secur3!ty")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != "anna@example.com" {
		t.Errorf("Expected email anna@example.com, got %s", user.Email)
	}

	if user.RoleID != RoleUser {
		t.Errorf("Expected default role %d, got %d", RoleUser, user.RoleID)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Registration never grants the admin role.
	if user.RoleID == RoleAdmin {
		t.Error("New user must not be an admin")
	}
}

func TestNewUserValidation(t *testing.T) {
	// Missing first name
	_, err := NewUser("", "Petrova", "", "", "anna@example.com", "Secur3!ty")
	if err != ErrEmptyFirstName {
		t.Errorf("Expected error %v, got %v", ErrEmptyFirstName, err)
	}

	// Missing last name
	_, err = NewUser("Anna", "", "", "", "anna@example.com", "Secur3!ty")
	if err != ErrEmptyLastName {
		t.Errorf("Expected error %v, got %v", ErrEmptyLastName, err)
	}

	// Missing email
	_, err = NewUser("Anna", "Petrova", "", "", "", "Secur3!ty")
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	// Malformed email
	_, err = NewUser("Anna", "Petrova", "", "", "invalidemail", "Secur3!ty")
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Password policy violations surface from NewUser
	_, err = NewUser("Anna", "Petrova", "", "", "anna@example.com", "weak")
	if err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		FirstName:      "Anna",
		LastName:       "Petrova",
		Email:          "anna@example.com",
		HashedPassword: "hashedpassword123",
		RoleID:         RoleUser,
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Nil ID
	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	// Stored user without a hash is invalid
	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); err != ErrEmptyHashedPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyHashedPassword, err)
	}

	// A transient plaintext password is held to the policy even when a
	// hash is present
	invalidUser = validUser
	invalidUser.Password = "no-upper-3!"
	if err := invalidUser.Validate(); err != ErrPasswordMissingUppercase {
		t.Errorf("Expected error %v, got %v", ErrPasswordMissingUppercase, err)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com", "x@sub.domain.org"}
	for _, email := range valid {
		if !validateEmailFormat(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}

	invalid := []string{"", "plain", "@example.com", "user@", "user@nodot", "user@.com", "user@domain."}
	for _, email := range invalid {
		if validateEmailFormat(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}
