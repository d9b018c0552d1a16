package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	authservice "github.com/syncroapp/syncro-backend/internal/auth/service"
	"github.com/syncroapp/syncro-backend/internal/common/clock"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
	userrepo "github.com/syncroapp/syncro-backend/internal/user/repository"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func fixedNow() time.Time {
	return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

type mockUserRepo struct {
	CreateFn           func(ctx context.Context, user userdomain.User) error
	FindByIDFn         func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	FindByEmailFn      func(ctx context.Context, email string) (userdomain.User, error)
	FindByIdentifierFn func(ctx context.Context, identifier string) (userdomain.User, error)
	FindByStudentIDFn  func(ctx context.Context, studentID string) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.FindByIDFn == nil {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return m.FindByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.FindByEmailFn == nil {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return m.FindByEmailFn(ctx, email)
}

func (m *mockUserRepo) FindByIdentifier(ctx context.Context, identifier string) (userdomain.User, error) {
	if m.FindByIdentifierFn == nil {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return m.FindByIdentifierFn(ctx, identifier)
}

func (m *mockUserRepo) FindByStudentID(ctx context.Context, studentID string) (userdomain.User, error) {
	if m.FindByStudentIDFn == nil {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	return m.FindByStudentIDFn(ctx, studentID)
}

type mockHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.HashFn == nil {
		return "hashed:" + password, nil
	}
	return m.HashFn(password)
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.CompareFn == nil {
		if hash == "hashed:"+password {
			return nil
		}
		return errors.New("hash mismatch")
	}
	return m.CompareFn(hash, password)
}

type mockIDGenerator struct {
	NewIDFn func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.NewIDFn == nil {
		return "11111111-2222-3333-4444-555555555555", nil
	}
	return m.NewIDFn()
}

type authDeps struct {
	repo   *mockUserRepo
	hasher *mockHasher
	ids    *mockIDGenerator
	clock  *clock.MockClock
}

func newAuthService(t *testing.T, deps authDeps) *authservice.AuthService {
	t.Helper()

	if deps.repo == nil {
		deps.repo = &mockUserRepo{}
	}
	if deps.hasher == nil {
		deps.hasher = &mockHasher{}
	}
	if deps.ids == nil {
		deps.ids = &mockIDGenerator{}
	}
	if deps.clock == nil {
		deps.clock = clock.NewMockClock(fixedNow())
	}

	tokens := authservice.NewTokenIssuer(testJWTSecret, 48*time.Hour, deps.clock)
	return authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        deps.repo,
		Hasher:      deps.hasher,
		IDGenerator: deps.ids,
		Tokens:      tokens,
		Clock:       deps.clock,
		Log:         newTestLogger(t),
	})
}
