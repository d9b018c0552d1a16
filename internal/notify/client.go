package notify

import (
	"encoding/json"
	"sync"
	"time"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/syncroapp/syncro-backend/internal/common/logger"
)

const maxMessageSize = 4 * 1024

type ClientConfig struct {
	WriteWait   time.Duration
	PongWait    time.Duration
	PingPeriod  time.Duration
	SendBufSize int
}

type Client struct {
	hub       *Hub
	conn      *gorillaWS.Conn
	sessionID string
	userID    string
	send      chan []byte
	done      chan struct{}
	cfg       ClientConfig
	log       *logger.Logger
	stopOnce  sync.Once
}

func NewClient(hub *Hub, conn *gorillaWS.Conn, sessionID string, cfg ClientConfig, log *logger.Logger) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, cfg.SendBufSize),
		done:      make(chan struct{}),
		cfg:       cfg,
		log:       log,
	}
}

func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// Stop signals the write pump and closes the transport; both pumps exit.
// The send channel is never closed, so a concurrent sender observes done
// instead of panicking. Safe to call more than once.
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if gorillaWS.IsUnexpectedCloseError(err, gorillaWS.CloseGoingAway, gorillaWS.CloseAbnormalClosure) {
				c.log.Warnf("websocket read error session_id=%s: %v", c.sessionID, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			c.log.Warnf("websocket invalid message session_id=%s: %v", c.sessionID, err)
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) handleMessage(msg *WSMessage) {
	switch msg.Type {
	case TypeRegister:
		var payload RegisterPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.UserID == "" {
			c.log.Warnf("websocket register without user_id session_id=%s", c.sessionID)
			return
		}
		c.userID = payload.UserID
		c.hub.Register(c)

	default:
		c.trySendError("UNKNOWN_MESSAGE_TYPE", "unknown message type")
	}
}

func (c *Client) trySendError(code, message string) {
	msg, err := marshalMessage(TypeError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	msgBytes, _ := json.Marshal(msg)
	select {
	case c.send <- msgBytes:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			c.conn.WriteMessage(gorillaWS.CloseMessage, []byte{})
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))

			w, err := c.conn.NextWriter(gorillaWS.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(gorillaWS.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
