package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	"github.com/syncroapp/syncro-backend/internal/notify"
)

func TestHubSendToDisconnectedUser(t *testing.T) {
	hub := notify.NewHub(newTestLogger(t), 50*time.Millisecond)

	msg := &notify.WSMessage{Type: notify.TypeNotification}
	err := hub.SendToUser(context.Background(), "nobody", msg)
	if !errors.Is(err, commonerrors.ErrUserNotConnected) {
		t.Fatalf("expected ErrUserNotConnected, got %v", err)
	}
}

func TestHubSendHonorsCanceledContext(t *testing.T) {
	hub := notify.NewHub(newTestLogger(t), 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := hub.SendToUser(ctx, "nobody", &notify.WSMessage{Type: notify.TypeNotification})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHubPresenceFollowsRegistry(t *testing.T) {
	hub := notify.NewHub(newTestLogger(t), 50*time.Millisecond)

	if hub.IsPresent("u1") {
		t.Fatal("expected no presence on a fresh hub")
	}

	hub.Registry().Register("u1", "s1")
	if !hub.IsPresent("u1") {
		t.Fatal("expected presence after registry registration")
	}
}
