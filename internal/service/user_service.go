package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/service/auth"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// RegisterParams carries the registration form fields.
type RegisterParams struct {
	FirstName   string
	LastName    string
	MiddleName  string
	PhoneNumber string
	Email       string
	Password    string
	Avatar      string
}

// ProfileUpdate carries the editable identity fields. It never touches
// the password or the role.
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	MiddleName  string
	PhoneNumber string
	Email       string
	// Avatar replaces the stored avatar only when non-empty; an empty
	// value leaves the stored avatar unchanged rather than clearing it.
	Avatar string
}

// AdminUserUpdate extends ProfileUpdate with the role, which only
// administrators may change.
type AdminUserUpdate struct {
	ProfileUpdate
	RoleID domain.RoleID
}

// UserService provides registration, authentication and profile operations.
type UserService interface {
	// Register creates a user with the default non-admin role. The raw
	// password is validated against the password policy and hashed before
	// persistence. Returns store.ErrEmailExists if the email is taken.
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)

	// Authenticate verifies the email/password pair. Returns
	// ErrInvalidCredentials for an unknown email or a wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// ChangePassword verifies the current password, validates the new one
	// against the password policy, and persists the new hash.
	// Returns ErrWrongPassword or a password policy error.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error

	// UpdateProfile mutates the editable identity fields.
	// Returns store.ErrEmailExists when changing to a taken email.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListUsers returns all users. Admin-scoped.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// AdminUpdateUser mutates identity fields and the role. Admin-scoped.
	AdminUpdateUser(ctx context.Context, userID uuid.UUID, update AdminUserUpdate) (*domain.User, error)

	// DeleteUser removes a user; learned-card associations cascade.
	// Admin-scoped.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates a new user with the default role.
// Uses a transaction to ensure atomicity of the operation.
func (s *UserServiceImpl) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	user, err := domain.NewUser(
		params.FirstName,
		params.LastName,
		params.MiddleName,
		params.PhoneNumber,
		params.Email,
		params.Password,
	)
	if err != nil {
		s.logger.Debug("registration rejected by validation",
			"error", err,
			"email", params.Email)
		return nil, err
	}
	user.Avatar = params.Avatar

	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email",
				"email", params.Email)
			return nil, err
		}
		s.logger.Error("failed to save user to database",
			"error", err,
			"email", params.Email)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// Authenticate verifies the email/password pair. The failure is the same
// for an unknown email and a wrong password.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication failed: unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for authentication",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword verifies the current password first, then validates and
// persists the new one. Uses a transaction so the read-modify-write of the
// user row is atomic.
func (s *UserServiceImpl) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			s.logger.Error("failed to retrieve user for password change",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to retrieve user for password change: %w", err)
		}

		if err := s.verifier.Compare(user.HashedPassword, currentPassword); err != nil {
			s.logger.Debug("password change rejected: wrong current password",
				"user_id", userID)
			return ErrWrongPassword
		}

		if err := domain.ValidatePassword(newPassword); err != nil {
			s.logger.Debug("password change rejected by policy",
				"error", err,
				"user_id", userID)
			return err
		}

		hashed, err := s.hasher.Hash(newPassword)
		if err != nil {
			s.logger.Error("failed to hash new password", "error", err)
			return fmt.Errorf("failed to change password: %w", err)
		}

		user.HashedPassword = hashed
		user.UpdatedAt = time.Now().UTC()

		if err := txStore.Update(ctx, user); err != nil {
			s.logger.Error("failed to persist new password",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to change password: %w", err)
		}

		s.logger.Info("password changed successfully", "user_id", userID)
		return nil
	})
}

// UpdateProfile mutates the editable identity fields, leaving password and
// role untouched.
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update ProfileUpdate,
) (*domain.User, error) {
	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			s.logger.Error("failed to retrieve user for profile update",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}

		applyProfileUpdate(user, update)

		if err := user.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, user); err != nil {
			if errors.Is(err, store.ErrEmailExists) {
				s.logger.Debug("attempted to update to an existing email",
					"user_id", userID,
					"new_email", update.Email)
			} else {
				s.logger.Error("failed to update profile",
					"error", err,
					"user_id", userID)
			}
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated successfully", "user_id", userID)
	return updated, nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all users.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// AdminUpdateUser mutates identity fields and the role.
func (s *UserServiceImpl) AdminUpdateUser(
	ctx context.Context,
	userID uuid.UUID,
	update AdminUserUpdate,
) (*domain.User, error) {
	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		applyProfileUpdate(user, update.ProfileUpdate)
		user.RoleID = update.RoleID

		if err := user.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) && !errors.Is(err, store.ErrEmailExists) {
			s.logger.Error("failed to update user",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	s.logger.Info("user updated by admin", "user_id", userID)
	return updated, nil
}

// DeleteUser removes a user. The schema cascades the learned-card rows.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userStore.Delete(ctx, userID); err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to delete user",
				"error", err,
				"user_id", userID)
		}
		return err
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

func applyProfileUpdate(user *domain.User, update ProfileUpdate) {
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.MiddleName = update.MiddleName
	user.PhoneNumber = update.PhoneNumber
	user.Email = update.Email
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}
	user.UpdatedAt = time.Now().UTC()
}
