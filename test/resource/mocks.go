package resource

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/syncroapp/syncro-backend/internal/common/clock"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/notify"
	resourcedomain "github.com/syncroapp/syncro-backend/internal/resource/domain"
	resourcerepo "github.com/syncroapp/syncro-backend/internal/resource/repository"
	resourceservice "github.com/syncroapp/syncro-backend/internal/resource/service"
	teamdomain "github.com/syncroapp/syncro-backend/internal/team/domain"
	teamrepo "github.com/syncroapp/syncro-backend/internal/team/repository"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
}

type mockResourceRepo struct {
	CreateFn     func(ctx context.Context, resource resourcedomain.Resource) error
	FindByIDFn   func(ctx context.Context, id resourcedomain.ID) (resourcedomain.Resource, error)
	FindByTeamFn func(ctx context.Context, teamID teamdomain.ID) ([]resourcedomain.WithCreator, error)
	DeleteFn     func(ctx context.Context, id resourcedomain.ID) error
}

func (m *mockResourceRepo) Create(ctx context.Context, resource resourcedomain.Resource) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, resource)
}

func (m *mockResourceRepo) FindByID(ctx context.Context, id resourcedomain.ID) (resourcedomain.Resource, error) {
	if m.FindByIDFn == nil {
		return resourcedomain.Resource{}, resourcerepo.ErrResourceNotFound
	}
	return m.FindByIDFn(ctx, id)
}

func (m *mockResourceRepo) FindByTeam(ctx context.Context, teamID teamdomain.ID) ([]resourcedomain.WithCreator, error) {
	if m.FindByTeamFn == nil {
		return nil, nil
	}
	return m.FindByTeamFn(ctx, teamID)
}

func (m *mockResourceRepo) Delete(ctx context.Context, id resourcedomain.ID) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

type mockTeamRepo struct {
	FindByIDFn func(ctx context.Context, id teamdomain.ID) (teamdomain.Team, error)
}

func (m *mockTeamRepo) Create(ctx context.Context, team teamdomain.Team) error { return nil }

func (m *mockTeamRepo) FindByID(ctx context.Context, id teamdomain.ID) (teamdomain.Team, error) {
	if m.FindByIDFn == nil {
		return teamdomain.Team{ID: id, Name: "Alpha", MemberIDs: []string{"a1", "b1"}}, nil
	}
	return m.FindByIDFn(ctx, id)
}

func (m *mockTeamRepo) FindDetails(ctx context.Context, id teamdomain.ID) (teamdomain.Details, error) {
	return teamdomain.Details{}, teamrepo.ErrTeamNotFound
}

func (m *mockTeamRepo) FindByMember(ctx context.Context, userID string) ([]teamdomain.Team, error) {
	return nil, nil
}

func (m *mockTeamRepo) ListOverviewsByUser(ctx context.Context, userID string) ([]teamdomain.Overview, error) {
	return nil, nil
}

func (m *mockTeamRepo) AddMember(ctx context.Context, teamID teamdomain.ID, userID userdomain.ID) error {
	return nil
}

type mockFileStore struct {
	SaveFn  func(filename string, src io.Reader) (string, error)
	removed []string
}

func (m *mockFileStore) Save(filename string, src io.Reader) (string, error) {
	if m.SaveFn == nil {
		return "/uploads/1700000000000-" + filename, nil
	}
	return m.SaveFn(filename, src)
}

func (m *mockFileStore) Remove(path string) error {
	m.removed = append(m.removed, path)
	return nil
}

type teamFanOut struct {
	event notify.Event
	team  notify.Team
}

type mockTeamNotifier struct {
	fanOuts []teamFanOut
}

func (m *mockTeamNotifier) FanOutToTeam(ctx context.Context, event notify.Event, team notify.Team) notify.Result {
	m.fanOuts = append(m.fanOuts, teamFanOut{event: event, team: team})
	return notify.Result{TeamsFound: 1}
}

type mockIDGenerator struct{}

func (m *mockIDGenerator) NewID() (string, error) {
	return "11111111-2222-3333-4444-555555555555", nil
}

type serviceMocks struct {
	resources *mockResourceRepo
	teams     *mockTeamRepo
	files     *mockFileStore
	notifier  *mockTeamNotifier
}

func newResourceService(t *testing.T, m serviceMocks) (*resourceservice.ResourceService, serviceMocks) {
	t.Helper()
	if m.resources == nil {
		m.resources = &mockResourceRepo{}
	}
	if m.teams == nil {
		m.teams = &mockTeamRepo{}
	}
	if m.files == nil {
		m.files = &mockFileStore{}
	}
	if m.notifier == nil {
		m.notifier = &mockTeamNotifier{}
	}
	svc := resourceservice.NewResourceService(resourceservice.ResourceServiceDeps{
		Resources:   m.resources,
		Teams:       m.teams,
		Files:       m.files,
		Notifier:    m.notifier,
		IDGenerator: &mockIDGenerator{},
		Clock:       clock.NewMockClock(fixedNow()),
		Log:         newTestLogger(t),
	})
	return svc, m
}
