package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
	"github.com/sarukeshwar2016/Inclusicity/pkg/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// VoiceWS handles GET /v1/voice/ws?token=...&room=...
//
// Browsers cannot set an Authorization header on a WebSocket handshake, so
// the bearer token travels as a query parameter and is verified here instead
// of in the middleware chain.
func (h *Handlers) VoiceWS(c *gin.Context) {
	identity, err := h.Tokens.Verify(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
		return
	}

	roomName := c.Query("room")
	acc, err := h.Auth.Profile(c.Request.Context(), identity.AccountID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Error("WebSocket upgrade failed", logger.Err(err))
		return
	}

	client := websocket.NewClient(h.Registry, conn, acc.Name, string(acc.Role), h.Logger)
	if err := h.Registry.Join(roomName, client); err != nil {
		conn.WriteJSON(gin.H{"error": "Unknown room"})
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// VoiceRooms handles GET /v1/voice/rooms
func (h *Handlers) VoiceRooms(c *gin.Context) {
	rooms := make([]gin.H, 0, len(websocket.DefaultRooms))
	for _, name := range websocket.DefaultRooms {
		rooms = append(rooms, gin.H{
			"name":    name,
			"members": len(h.Registry.Members(name)),
		})
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
