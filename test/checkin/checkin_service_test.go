package checkin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkindomain "github.com/syncroapp/syncro-backend/internal/checkin/domain"
	checkinservice "github.com/syncroapp/syncro-backend/internal/checkin/service"
	"github.com/syncroapp/syncro-backend/internal/common/clock"
	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/notify"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

type mockCheckinRepo struct {
	CreateFn     func(ctx context.Context, checkin checkindomain.Checkin) error
	FindByUserFn func(ctx context.Context, userID string, limit int) ([]checkindomain.Checkin, error)
}

func (m *mockCheckinRepo) Create(ctx context.Context, checkin checkindomain.Checkin) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, checkin)
}

func (m *mockCheckinRepo) FindByUser(ctx context.Context, userID string, limit int) ([]checkindomain.Checkin, error) {
	if m.FindByUserFn == nil {
		return nil, nil
	}
	return m.FindByUserFn(ctx, userID, limit)
}

type mockNotifier struct {
	FanOutFn func(ctx context.Context, event notify.Event) (notify.Result, error)
	events   []notify.Event
}

func (m *mockNotifier) FanOut(ctx context.Context, event notify.Event) (notify.Result, error) {
	m.events = append(m.events, event)
	if m.FanOutFn == nil {
		return notify.Result{}, nil
	}
	return m.FanOutFn(ctx, event)
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

func fixedNow() time.Time {
	return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
}

func newCheckinService(t *testing.T, repo *mockCheckinRepo, notifier *mockNotifier) *checkinservice.CheckinService {
	t.Helper()
	if repo == nil {
		repo = &mockCheckinRepo{}
	}
	if notifier == nil {
		notifier = &mockNotifier{}
	}
	return checkinservice.NewCheckinService(checkinservice.CheckinServiceDeps{
		Checkins:    repo,
		Notifier:    notifier,
		IDGenerator: &mockIDGenerator{},
		Clock:       clock.NewMockClock(fixedNow()),
		Log:         newTestLogger(t),
	})
}

func validSubmitInput() checkinservice.SubmitInput {
	return checkinservice.SubmitInput{
		Mood:        4,
		Energy:      3,
		Blockers:    []string{"waiting on API keys"},
		NextSteps:   "wire the dashboard",
		WorkDone:    "finished the auth flow",
		HoursWorked: 2.5,
	}
}

func TestSubmitPersistsBeforeNotifying(t *testing.T) {
	var order []string
	repo := &mockCheckinRepo{
		CreateFn: func(ctx context.Context, checkin checkindomain.Checkin) error {
			order = append(order, "persist")
			return nil
		},
	}
	notifier := &mockNotifier{
		FanOutFn: func(ctx context.Context, event notify.Event) (notify.Result, error) {
			order = append(order, "notify")
			return notify.Result{
				TeamsFound:   1,
				Candidates:   2,
				Delivered:    1,
				CandidateIDs: []string{"b1", "c1"},
				DeliveredTo:  []string{"b1"},
			}, nil
		},
	}

	svc := newCheckinService(t, repo, notifier)

	result, err := svc.Submit(context.Background(), "a1", "Alice", validSubmitInput())
	require.NoError(t, err)

	assert.Equal(t, []string{"persist", "notify"}, order)
	assert.Equal(t, 1, result.NotificationsSent)
	assert.Equal(t, 1, result.TeamsFound)
	assert.Equal(t, fixedNow(), result.Checkin.CreatedAt)
}

func TestSubmitReportsOfflineCoMembers(t *testing.T) {
	notifier := &mockNotifier{
		FanOutFn: func(ctx context.Context, event notify.Event) (notify.Result, error) {
			// c1 is offline and got nothing delivered; it still belongs in
			// notifiedUsers.
			return notify.Result{
				TeamsFound:   1,
				Candidates:   2,
				Delivered:    1,
				CandidateIDs: []string{"b1", "c1"},
				DeliveredTo:  []string{"b1"},
			}, nil
		},
	}

	svc := newCheckinService(t, nil, notifier)

	result, err := svc.Submit(context.Background(), "a1", "Alice", validSubmitInput())
	require.NoError(t, err)

	assert.Equal(t, []string{"b1", "c1"}, result.NotifiedUsers)
	assert.Equal(t, 1, result.NotificationsSent)
}

func TestSubmitBuildsCheckinEvent(t *testing.T) {
	notifier := &mockNotifier{}

	svc := newCheckinService(t, nil, notifier)

	_, err := svc.Submit(context.Background(), "a1", "Alice", validSubmitInput())
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	event := notifier.events[0]
	assert.Equal(t, notify.KindCheckin, event.Kind)
	assert.Equal(t, "a1", event.ActorID)
	assert.Equal(t, "Alice", event.ActorName)
	assert.Equal(t, "Alice just checked in.", event.Message)
	assert.Equal(t, fixedNow(), event.Timestamp)
}

func TestSubmitSurvivesFanOutFailure(t *testing.T) {
	persisted := false
	repo := &mockCheckinRepo{
		CreateFn: func(ctx context.Context, checkin checkindomain.Checkin) error {
			persisted = true
			return nil
		},
	}
	notifier := &mockNotifier{
		FanOutFn: func(ctx context.Context, event notify.Event) (notify.Result, error) {
			return notify.Result{}, commonerrors.ErrTeamLookupFailed
		},
	}

	svc := newCheckinService(t, repo, notifier)

	result, err := svc.Submit(context.Background(), "a1", "Alice", validSubmitInput())
	require.NoError(t, err)

	assert.True(t, persisted)
	assert.Zero(t, result.NotificationsSent)
	assert.Zero(t, result.TeamsFound)
	assert.Empty(t, result.NotifiedUsers)
	assert.NotEmpty(t, result.Checkin.ID)
}

func TestSubmitStoreFailureSkipsFanOut(t *testing.T) {
	repo := &mockCheckinRepo{
		CreateFn: func(ctx context.Context, checkin checkindomain.Checkin) error {
			return errors.New("connection reset")
		},
	}
	notifier := &mockNotifier{}

	svc := newCheckinService(t, repo, notifier)

	_, err := svc.Submit(context.Background(), "a1", "Alice", validSubmitInput())
	de, ok := commonerrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "DATABASE_ERROR", de.Code())
	assert.Empty(t, notifier.events)
}

func TestSubmitValidatesScales(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*checkinservice.SubmitInput)
	}{
		{"mood too low", func(in *checkinservice.SubmitInput) { in.Mood = 0 }},
		{"mood too high", func(in *checkinservice.SubmitInput) { in.Mood = 6 }},
		{"energy too low", func(in *checkinservice.SubmitInput) { in.Energy = 0 }},
		{"energy too high", func(in *checkinservice.SubmitInput) { in.Energy = 6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCheckinRepo{
				CreateFn: func(ctx context.Context, checkin checkindomain.Checkin) error {
					t.Fatal("invalid check-in must not be persisted")
					return nil
				},
			}
			svc := newCheckinService(t, repo, nil)

			input := validSubmitInput()
			tt.mutate(&input)

			_, err := svc.Submit(context.Background(), "a1", "Alice", input)
			de, ok := commonerrors.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_FAILED", de.Code())
		})
	}
}

func TestSubmitDefaultsBlockersToEmptySlice(t *testing.T) {
	var saved checkindomain.Checkin
	repo := &mockCheckinRepo{
		CreateFn: func(ctx context.Context, checkin checkindomain.Checkin) error {
			saved = checkin
			return nil
		},
	}

	svc := newCheckinService(t, repo, nil)

	input := validSubmitInput()
	input.Blockers = nil

	_, err := svc.Submit(context.Background(), "a1", "Alice", input)
	require.NoError(t, err)
	assert.NotNil(t, saved.Blockers)
	assert.Empty(t, saved.Blockers)
}

func TestListUsesDefaultLimit(t *testing.T) {
	repo := &mockCheckinRepo{
		FindByUserFn: func(ctx context.Context, userID string, limit int) ([]checkindomain.Checkin, error) {
			assert.Equal(t, "a1", userID)
			assert.Equal(t, 50, limit)
			return []checkindomain.Checkin{{ID: "c1"}, {ID: "c2"}}, nil
		},
	}

	svc := newCheckinService(t, repo, nil)

	checkins, err := svc.List(context.Background(), "a1")
	require.NoError(t, err)
	assert.Len(t, checkins, 2)
}
