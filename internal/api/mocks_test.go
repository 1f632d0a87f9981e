package api_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/service"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// MockUserService mocks the service.UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(
	ctx context.Context,
	params service.RegisterParams,
) (*domain.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockUserService) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update service.ProfileUpdate,
) (*domain.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserService) AdminUpdateUser(
	ctx context.Context,
	userID uuid.UUID,
	update service.AdminUserUpdate,
) (*domain.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockCardService mocks the service.CardService interface
type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) Search(
	ctx context.Context,
	filter store.CardFilter,
) ([]*domain.Card, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardService) GetAll(ctx context.Context) ([]*domain.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardService) GetCard(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardService) CreateCard(
	ctx context.Context,
	params service.CardParams,
) (*domain.Card, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardService) UpdateCard(
	ctx context.Context,
	id uuid.UUID,
	params service.CardParams,
) (*domain.Card, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardService) ListArtists(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCardService) AlbumsByArtist(
	ctx context.Context,
	artist string,
) ([]*domain.Album, error) {
	args := m.Called(ctx, artist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Album), args.Error(1)
}

// MockProgressService mocks the service.ProgressService interface
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) MarkLearned(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (int, error) {
	args := m.Called(ctx, userID, cardID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressService) UnmarkLearned(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (int, error) {
	args := m.Called(ctx, userID, cardID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressService) IsLearned(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, userID, cardID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressService) CountLearned(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressService) ListLearned(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.LearnedCardDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LearnedCardDetail), args.Error(1)
}

// fakeRefreshStore is an in-memory RefreshTokenStore for handler tests.
type fakeRefreshStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]string
}

func newFakeRefreshStore() *fakeRefreshStore {
	return &fakeRefreshStore{tokens: make(map[uuid.UUID]string)}
}

func (s *fakeRefreshStore) Save(
	ctx context.Context,
	userID uuid.UUID,
	token string,
	lifetime time.Duration,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = token
	return nil
}

func (s *fakeRefreshStore) Check(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tokens[userID]
	return ok && stored == token, nil
}

func (s *fakeRefreshStore) Revoke(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}
