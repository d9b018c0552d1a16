package auth

import (
	"context"
	"testing"

	authservice "github.com/syncroapp/syncro-backend/internal/auth/service"
	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
	userrepo "github.com/syncroapp/syncro-backend/internal/user/repository"
)

func TestLoginSuccess(t *testing.T) {
	repo := &mockUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{
				ID:           "u1",
				Name:         "Alice",
				Email:        email,
				Role:         userdomain.RoleStudent,
				PasswordHash: "hashed:correct-horse",
			}, nil
		},
	}

	svc := newAuthService(t, authDeps{repo: repo})

	result, err := svc.Login(context.Background(), authservice.LoginInput{
		Email:    "alice@example.edu",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.ID != "u1" {
		t.Fatalf("expected user u1, got %q", result.User.ID)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	repo := &mockUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{}, userrepo.ErrUserNotFound
		},
	}

	svc := newAuthService(t, authDeps{repo: repo})

	_, err := svc.Login(context.Background(), authservice.LoginInput{
		Email:    "ghost@example.edu",
		Password: "whatever",
	})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &mockUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{
				ID:           "u1",
				Email:        email,
				PasswordHash: "hashed:correct-horse",
			}, nil
		},
	}

	svc := newAuthService(t, authDeps{repo: repo})

	_, err := svc.Login(context.Background(), authservice.LoginInput{
		Email:    "alice@example.edu",
		Password: "wrong",
	})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS, got %v", err)
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc := newAuthService(t, authDeps{})

	_, err := svc.Login(context.Background(), authservice.LoginInput{})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "MISSING_FIELDS" {
		t.Fatalf("expected MISSING_FIELDS, got %v", err)
	}
}
