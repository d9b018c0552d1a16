package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/observability/metrics"
)

// Hub owns every live websocket client and the presence registry. All
// attach/register/detach transitions run on the single Run goroutine.
// Client send channels are never closed; Stop signals a client's done
// channel, so senders racing a disconnect fail instead of panicking.
type Hub struct {
	clients     sync.Map
	registry    *Registry
	register    chan *Client
	unregister  chan *Client
	clientCount atomic.Int64
	sendTimeout time.Duration
	log         *logger.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewHub(log *logger.Logger, sendTimeout time.Duration) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		registry:    NewRegistry(),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		sendTimeout: sendTimeout,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (h *Hub) Registry() *Registry {
	return h.registry
}

// Attach makes a freshly upgraded connection deliverable and shutdown-aware.
// The client is anonymous until it announces an identity.
func (h *Hub) Attach(client *Client) {
	h.clients.Store(client.sessionID, client)
	total := h.clientCount.Add(1)
	metrics.WebSocketConnectionsActive.Inc()
	h.log.WithFields(h.ctx, logger.Fields{
		"session_id": client.sessionID,
		"total":      total,
		"action":     "ws_attach",
	}).Info("websocket client attached")
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case <-h.ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	previous, replaced := h.registry.Register(client.userID, client.sessionID)
	if replaced {
		if value, ok := h.clients.LoadAndDelete(previous); ok {
			old := value.(*Client)
			h.log.WithFields(h.ctx, logger.Fields{
				"user_id":    client.userID,
				"session_id": previous,
				"action":     "ws_close_superseded",
			}).Info("websocket closing superseded session")
			old.Stop()
			h.clientCount.Add(-1)
			metrics.WebSocketConnectionsActive.Dec()
			metrics.WebSocketDisconnections.WithLabelValues("superseded").Inc()
		}
	}

	metrics.WebSocketRegistrationsTotal.Inc()
	h.log.WithFields(h.ctx, logger.Fields{
		"user_id":    client.userID,
		"session_id": client.sessionID,
		"action":     "ws_register",
	}).Info("websocket client registered")

	ack, err := marshalMessage(TypeRegistered, RegisteredPayload{
		UserID:    client.userID,
		SessionID: client.sessionID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.log.WithFields(h.ctx, logger.Fields{
			"user_id": client.userID,
			"action":  "ws_register_ack_marshal",
		}).Errorf("websocket failed to marshal registered ack: %v", err)
		return
	}
	ackBytes, _ := json.Marshal(ack)
	select {
	case client.send <- ackBytes:
	default:
		h.log.WithFields(h.ctx, logger.Fields{
			"user_id": client.userID,
			"action":  "ws_register_ack_dropped",
		}).Warn("websocket registered ack dropped")
	}
}

func (h *Hub) handleUnregister(client *Client) {
	if _, ok := h.clients.LoadAndDelete(client.sessionID); !ok {
		return
	}

	// A superseded session's mapping is already gone; this is a no-op then.
	userID, hadIdentity := h.registry.Unregister(client.sessionID)

	client.Stop()
	total := h.clientCount.Add(-1)
	metrics.WebSocketConnectionsActive.Dec()
	metrics.WebSocketDisconnections.WithLabelValues("disconnect").Inc()

	fields := logger.Fields{
		"session_id": client.sessionID,
		"total":      total,
		"action":     "ws_unregister",
	}
	if hadIdentity {
		fields["user_id"] = userID
	}
	h.log.WithFields(h.ctx, fields).Info("websocket client unregistered")
}

func (h *Hub) shutdown() {
	clients := make([]*Client, 0)
	h.clients.Range(func(key, value any) bool {
		clients = append(clients, value.(*Client))
		return true
	})

	shutdownMsg, err := json.Marshal(&WSMessage{Type: TypeShutdown})
	if err != nil {
		h.log.WithFields(h.ctx, logger.Fields{
			"action": "ws_shutdown_marshal",
		}).Errorf("websocket failed to marshal shutdown message: %v", err)
	}

	for _, client := range clients {
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), h.sendTimeout)
			select {
			case client.send <- shutdownMsg:
			case <-ctx.Done():
			}
			cancel()
		}
		client.Stop()
	}

	h.clients.Range(func(key, value any) bool {
		h.clients.Delete(key)
		return true
	})

	h.log.WithFields(h.ctx, logger.Fields{
		"clients": len(clients),
		"action":  "ws_hub_shutdown",
	}).Info("websocket hub shutdown completed")
}

// IsPresent reports whether the user has a registered live session.
func (h *Hub) IsPresent(userID string) bool {
	return h.registry.IsPresent(userID)
}

// SendToUser pushes one message to the user's current session, honoring the
// configured send timeout so a stuck client cannot wedge the caller.
func (h *Hub) SendToUser(ctx context.Context, userID string, message *WSMessage) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	sessionID, ok := h.registry.SessionFor(userID)
	if !ok {
		return fmt.Errorf("user %s: %w", userID, commonerrors.ErrUserNotConnected)
	}
	value, ok := h.clients.Load(sessionID)
	if !ok {
		return fmt.Errorf("user %s: %w", userID, commonerrors.ErrUserNotConnected)
	}
	client := value.(*Client)

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%w: %v", commonerrors.ErrMarshalError, err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, h.sendTimeout)
	defer cancel()
	select {
	case client.send <- messageBytes:
	case <-client.done:
		return fmt.Errorf("user %s: %w", userID, commonerrors.ErrUserNotConnected)
	case <-sendCtx.Done():
		h.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"type":    string(message.Type),
			"action":  "ws_send_timeout",
		}).Warn("websocket send timed out")
		return fmt.Errorf("user %s: %w", userID, commonerrors.ErrSendTimeout)
	}

	return nil
}

func (h *Hub) Shutdown() {
	h.cancel()
}

// Done exposes the hub lifetime for helpers that outlive a request.
func (h *Hub) Done() <-chan struct{} {
	return h.ctx.Done()
}
