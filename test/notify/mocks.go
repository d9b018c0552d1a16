package notify

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

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

type mockResolver struct {
	TeamsForUserFn func(ctx context.Context, userID string) ([]notify.Team, error)
}

func (m *mockResolver) TeamsForUser(ctx context.Context, userID string) ([]notify.Team, error) {
	return m.TeamsForUserFn(ctx, userID)
}

type sentNotification struct {
	UserID  string
	Payload notify.NotificationPayload
}

// mockDelivery records every send and lets tests control presence and
// per-recipient failures.
type mockDelivery struct {
	mu      sync.Mutex
	present map[string]bool
	failFor map[string]error
	sent    []sentNotification
}

func newMockDelivery(presentUsers ...string) *mockDelivery {
	present := make(map[string]bool, len(presentUsers))
	for _, u := range presentUsers {
		present[u] = true
	}
	return &mockDelivery{
		present: present,
		failFor: make(map[string]error),
	}
}

func (m *mockDelivery) IsPresent(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.present[userID]
}

func (m *mockDelivery) SendToUser(ctx context.Context, userID string, msg *notify.WSMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failFor[userID]; ok {
		return err
	}

	var payload notify.NotificationPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return err
	}
	m.sent = append(m.sent, sentNotification{UserID: userID, Payload: payload})
	return nil
}

func (m *mockDelivery) sentTo(userID string) []sentNotification {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []sentNotification
	for _, s := range m.sent {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

func (m *mockDelivery) totalSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
