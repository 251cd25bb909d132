package websocket

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one WebSocket participant in a voice room
type Client struct {
	SessionID string
	Name      string
	Role      string
	Conn      *websocket.Conn
	Send      chan []byte

	room     string
	registry *RoomRegistry
	logger   *logger.Logger
}

// NewClient creates a client for an upgraded connection
func NewClient(registry *RoomRegistry, conn *websocket.Conn, name, role string, log *logger.Logger) *Client {
	return &Client{
		SessionID: newSessionID(),
		Name:      name,
		Role:      role,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		registry:  registry,
		logger:    log,
	}
}

// ReadPump pumps signaling frames from the connection into the registry
func (c *Client) ReadPump() {
	defer func() {
		c.registry.Leave(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket read error",
					logger.Err(err),
					logger.String("session_id", c.SessionID),
				)
			}
			break
		}
		c.handleMessage(raw)
	}
}

// WritePump pumps queued frames out to the connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.logger.Warn("Malformed signaling frame",
			logger.Err(err),
			logger.String("session_id", c.SessionID),
		)
		return
	}

	switch msg.Type {
	case "signal":
		// WebRTC offer/answer/candidate relay; stamp the sender so the
		// peer knows who to answer.
		msg.From = c.SessionID
		c.registry.RelayToPeer(c.room, msg.To, msg)
	case "speaking":
		// Speaking indicator goes to everyone else in the room; the
		// isSpeaking flag travels in Data untouched.
		msg.From = c.SessionID
		c.registry.relayExcept(c.room, c.SessionID, msg)
	case "force_mute":
		if c.Role != "admin" {
			c.logger.Warn("Force mute refused for non-admin",
				logger.String("session_id", c.SessionID),
				logger.String("role", c.Role),
			)
			return
		}
		msg.From = c.SessionID
		c.registry.RelayToPeer(c.room, msg.To, msg)
	case "leave":
		c.registry.Leave(c)
	default:
		c.logger.Warn("Unknown signaling frame type",
			logger.String("type", msg.Type),
			logger.String("session_id", c.SessionID),
		)
	}
}

func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return time.Now().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(b)
}
