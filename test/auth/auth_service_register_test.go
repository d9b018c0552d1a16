package auth

import (
	"context"
	"testing"

	authservice "github.com/syncroapp/syncro-backend/internal/auth/service"
	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
	userrepo "github.com/syncroapp/syncro-backend/internal/user/repository"
)

func validRegisterInput() authservice.RegisterInput {
	return authservice.RegisterInput{
		Name:      "Alice",
		Email:     "alice@example.edu",
		StudentID: "S1001",
		Major:     "CS",
		Year:      3,
		Role:      "student",
		Password:  "correct-horse",
	}
}

func TestRegisterSuccess(t *testing.T) {
	var created userdomain.User
	repo := &mockUserRepo{
		CreateFn: func(ctx context.Context, user userdomain.User) error {
			created = user
			return nil
		},
	}

	svc := newAuthService(t, authDeps{repo: repo})

	result, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if created.ID == "" {
		t.Fatal("expected user to be persisted with an id")
	}
	if created.PasswordHash == "correct-horse" {
		t.Fatal("password must be hashed before persisting")
	}
	if created.Role != userdomain.RoleStudent {
		t.Fatalf("expected student role, got %q", created.Role)
	}
}

func TestRegisterDefaultsRoleAndAvatar(t *testing.T) {
	var created userdomain.User
	repo := &mockUserRepo{
		CreateFn: func(ctx context.Context, user userdomain.User) error {
			created = user
			return nil
		},
	}

	svc := newAuthService(t, authDeps{repo: repo})

	input := validRegisterInput()
	input.Role = "superuser"
	input.Avatar = nil

	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Role != userdomain.RoleStudent {
		t.Fatalf("unknown role must fall back to student, got %q", created.Role)
	}
	if len(created.Avatar) != 2 {
		t.Fatalf("expected default avatar colors, got %v", created.Avatar)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		CreateFn: func(ctx context.Context, user userdomain.User) error {
			return userrepo.ErrEmailAlreadyInUse
		},
	}

	svc := newAuthService(t, authDeps{repo: repo})

	_, err := svc.Register(context.Background(), validRegisterInput())
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "USER_ALREADY_EXISTS" {
		t.Fatalf("expected USER_ALREADY_EXISTS, got %v", err)
	}
	if de.HTTPStatus() != 400 {
		t.Fatalf("expected 400 for duplicate email, got %d", de.HTTPStatus())
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t, authDeps{})

	tests := []struct {
		name     string
		mutate   func(*authservice.RegisterInput)
		wantCode string
	}{
		{
			name:     "missing name",
			mutate:   func(in *authservice.RegisterInput) { in.Name = "" },
			wantCode: "MISSING_FIELDS",
		},
		{
			name:     "missing email",
			mutate:   func(in *authservice.RegisterInput) { in.Email = "" },
			wantCode: "MISSING_FIELDS",
		},
		{
			name:     "missing password",
			mutate:   func(in *authservice.RegisterInput) { in.Password = "" },
			wantCode: "MISSING_FIELDS",
		},
		{
			name:     "short password",
			mutate:   func(in *authservice.RegisterInput) { in.Password = "short" },
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "single avatar color",
			mutate:   func(in *authservice.RegisterInput) { in.Avatar = []string{"#FF6B6B"} },
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "malformed avatar color",
			mutate:   func(in *authservice.RegisterInput) { in.Avatar = []string{"#FF6B6B", "red"} },
			wantCode: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegisterInput()
			tt.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			de, ok := commonerrors.AsDomainError(err)
			if !ok || de.Code() != tt.wantCode {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}
