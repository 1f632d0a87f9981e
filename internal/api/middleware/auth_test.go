package middleware_test

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lyricdeck/lyricdeck-api/internal/api/middleware"
	"github.com/lyricdeck/lyricdeck-api/internal/api/shared"
	"github.com/lyricdeck/lyricdeck-api/internal/config"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/service/auth"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// mockUserStore implements store.UserStore for the role-check middleware.
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-long-enough-for-hs256",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	jwtService := newJWTService(t)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	userID := uuid.New()

	nextCalled := false
	var seenUserID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		seenUserID, _ = middleware.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	handler := authMiddleware.Authenticate(next)

	t.Run("valid token passes and carries the user id", func(t *testing.T) {
		nextCalled = false

		token, err := jwtService.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, nextCalled)
		assert.Equal(t, userID, seenUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		nextCalled = false

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, nextCalled)
	})

	t.Run("malformed header", func(t *testing.T) {
		nextCalled = false

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, nextCalled)
	})

	t.Run("refresh token is rejected", func(t *testing.T) {
		nextCalled = false

		token, err := jwtService.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, nextCalled)
	})

	t.Run("garbage token", func(t *testing.T) {
		nextCalled = false

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, nextCalled)
	})
}

func TestAdminMiddleware_RequireAdmin(t *testing.T) {
	adminID := uuid.New()
	userID := uuid.New()

	admin := &domain.User{ID: adminID, Email: "admin@example.com", RoleID: domain.RoleAdmin}
	regular := &domain.User{ID: userID, Email: "user@example.com", RoleID: domain.RoleUser}

	newRequest := func(id uuid.UUID) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		return req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, id))
	}

	t.Run("admin passes and the user lands in context", func(t *testing.T) {
		userStore := new(mockUserStore)
		userStore.On("GetByID", mock.Anything, adminID).Return(admin, nil)

		adminMiddleware := middleware.NewAdminMiddleware(userStore, testLogger())

		var currentUser *domain.User
		handler := adminMiddleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			currentUser, _ = r.Context().Value(shared.CurrentUserContextKey).(*domain.User)
			w.WriteHeader(http.StatusOK)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(adminID))

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, currentUser)
		assert.Equal(t, adminID, currentUser.ID)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		userStore := new(mockUserStore)
		userStore.On("GetByID", mock.Anything, userID).Return(regular, nil)

		adminMiddleware := middleware.NewAdminMiddleware(userStore, testLogger())

		nextCalled := false
		handler := adminMiddleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(userID))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, nextCalled)
	})

	t.Run("unauthenticated request", func(t *testing.T) {
		adminMiddleware := middleware.NewAdminMiddleware(new(mockUserStore), testLogger())

		handler := adminMiddleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted user is unauthorized", func(t *testing.T) {
		userStore := new(mockUserStore)
		userStore.On("GetByID", mock.Anything, adminID).Return(nil, store.ErrUserNotFound)

		adminMiddleware := middleware.NewAdminMiddleware(userStore, testLogger())

		handler := adminMiddleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequest(adminID))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
