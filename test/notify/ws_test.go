package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaWS "github.com/gorilla/websocket"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	"github.com/syncroapp/syncro-backend/internal/notify"
)

func wsTestConfig() notify.ClientConfig {
	return notify.ClientConfig{
		WriteWait:   time.Second,
		PongWait:    5 * time.Second,
		PingPeriod:  4 * time.Second,
		SendBufSize: 8,
	}
}

func dialTestHub(t *testing.T, hub *notify.Hub) (*gorillaWS.Conn, func()) {
	t.Helper()

	handler := notify.NewHandler(hub, nil, wsTestConfig(), newTestLogger(t))
	srv := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := gorillaWS.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("failed to dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func registerOverWire(t *testing.T, conn *gorillaWS.Conn, userID string) {
	t.Helper()

	register, err := json.Marshal(map[string]any{
		"type":    "register",
		"payload": map[string]string{"user_id": userID},
	})
	if err != nil {
		t.Fatalf("failed to marshal register: %v", err)
	}
	if err := conn.WriteMessage(gorillaWS.TextMessage, register); err != nil {
		t.Fatalf("failed to send register: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, ackBytes, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read ack: %v", err)
	}
	var ack notify.WSMessage
	if err := json.Unmarshal(ackBytes, &ack); err != nil {
		t.Fatalf("malformed ack %q: %v", ackBytes, err)
	}
	if ack.Type != notify.TypeRegistered {
		t.Fatalf("expected registered ack, got %q", ack.Type)
	}
}

func waitForAbsence(t *testing.T, hub *notify.Hub, userID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.IsPresent(userID) {
		if time.Now().After(deadline) {
			t.Fatalf("user %s still present after disconnect", userID)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubDeliversOverWire(t *testing.T) {
	hub := notify.NewHub(newTestLogger(t), 200*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn, cleanup := dialTestHub(t, hub)
	defer cleanup()

	registerOverWire(t, conn, "u1")
	if !hub.IsPresent("u1") {
		t.Fatal("expected u1 present after register")
	}

	payload, err := json.Marshal(map[string]string{"message": "Alice just checked in."})
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	msg := &notify.WSMessage{Type: notify.TypeNotification, Payload: payload}
	if err := hub.SendToUser(context.Background(), "u1", msg); err != nil {
		t.Fatalf("send to connected user failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read notification: %v", err)
	}
	var got notify.WSMessage
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("malformed notification %q: %v", raw, err)
	}
	if got.Type != notify.TypeNotification {
		t.Fatalf("expected notification, got %q", got.Type)
	}
}

func TestHubSendAfterDisconnectFailsCleanly(t *testing.T) {
	hub := notify.NewHub(newTestLogger(t), 200*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn, cleanup := dialTestHub(t, hub)
	defer cleanup()

	registerOverWire(t, conn, "u1")

	conn.Close()
	waitForAbsence(t, hub, "u1")

	// A fan-out racing the disconnect must get an error, never a panic on
	// the torn-down session's channel.
	msg := &notify.WSMessage{Type: notify.TypeNotification}
	if err := hub.SendToUser(context.Background(), "u1", msg); !errors.Is(err, commonerrors.ErrUserNotConnected) {
		t.Fatalf("expected ErrUserNotConnected, got %v", err)
	}
}
