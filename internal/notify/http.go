package notify

import (
	"net/http"

	gorillaWS "github.com/gorilla/websocket"
	"github.com/google/uuid"

	"github.com/syncroapp/syncro-backend/internal/common/logger"
)

type Handler struct {
	hub       *Hub
	upgrader  gorillaWS.Upgrader
	clientCfg ClientConfig
	log       *logger.Logger
}

func NewHandler(hub *Hub, allowedOrigins []string, clientCfg ClientConfig, log *logger.Logger) *Handler {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = struct{}{}
	}

	return &Handler{
		hub: hub,
		upgrader: gorillaWS.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := originSet[origin]; ok {
					return true
				}
				host := r.Host
				if host == "" {
					host = r.URL.Host
				}
				return origin == "http://"+host || origin == "https://"+host
			},
		},
		clientCfg: clientCfg,
		log:       log,
	}
}

// HandleWebSocket upgrades the connection and attaches an anonymous client.
// Identity arrives later over the socket as a register message.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "ws_upgrade_failed",
		}).Errorf("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, uuid.NewString(), h.clientCfg, h.log)
	h.hub.Attach(client)
	client.Start()
}
