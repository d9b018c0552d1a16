package team

import (
	"context"
	"testing"

	"github.com/syncroapp/syncro-backend/internal/common/logger"
	teamdomain "github.com/syncroapp/syncro-backend/internal/team/domain"
	teamrepo "github.com/syncroapp/syncro-backend/internal/team/repository"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
	userrepo "github.com/syncroapp/syncro-backend/internal/user/repository"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

type mockTeamRepo struct {
	CreateFn              func(ctx context.Context, team teamdomain.Team) error
	FindByIDFn            func(ctx context.Context, id teamdomain.ID) (teamdomain.Team, error)
	FindDetailsFn         func(ctx context.Context, id teamdomain.ID) (teamdomain.Details, error)
	FindByMemberFn        func(ctx context.Context, userID string) ([]teamdomain.Team, error)
	ListOverviewsByUserFn func(ctx context.Context, userID string) ([]teamdomain.Overview, error)
	AddMemberFn           func(ctx context.Context, teamID teamdomain.ID, userID userdomain.ID) error
}

func (m *mockTeamRepo) Create(ctx context.Context, team teamdomain.Team) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, team)
}

func (m *mockTeamRepo) FindByID(ctx context.Context, id teamdomain.ID) (teamdomain.Team, error) {
	if m.FindByIDFn == nil {
		return teamdomain.Team{ID: id}, nil
	}
	return m.FindByIDFn(ctx, id)
}

func (m *mockTeamRepo) FindDetails(ctx context.Context, id teamdomain.ID) (teamdomain.Details, error) {
	if m.FindDetailsFn == nil {
		return teamdomain.Details{}, teamrepo.ErrTeamNotFound
	}
	return m.FindDetailsFn(ctx, id)
}

func (m *mockTeamRepo) FindByMember(ctx context.Context, userID string) ([]teamdomain.Team, error) {
	if m.FindByMemberFn == nil {
		return nil, nil
	}
	return m.FindByMemberFn(ctx, userID)
}

func (m *mockTeamRepo) ListOverviewsByUser(ctx context.Context, userID string) ([]teamdomain.Overview, error) {
	if m.ListOverviewsByUserFn == nil {
		return nil, nil
	}
	return m.ListOverviewsByUserFn(ctx, userID)
}

func (m *mockTeamRepo) AddMember(ctx context.Context, teamID teamdomain.ID, userID userdomain.ID) error {
	if m.AddMemberFn == nil {
		return nil
	}
	return m.AddMemberFn(ctx, teamID, userID)
}

type mockUserRepo struct {
	FindByIdentifierFn func(ctx context.Context, identifier string) (userdomain.User, error)
	FindByStudentIDFn  func(ctx context.Context, studentID string) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	return userdomain.User{}, userrepo.ErrUserNotFound
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

type mockIDGenerator struct {
	NewIDFn func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.NewIDFn == nil {
		return "11111111-2222-3333-4444-555555555555", nil
	}
	return m.NewIDFn()
}
