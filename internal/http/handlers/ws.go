package handlers

import (
	"net/http"

	"github.com/YeldosQoja/Chess-backend/internal/logger"
	"github.com/YeldosQoja/Chess-backend/internal/service"
	"github.com/YeldosQoja/Chess-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func (h *Handler) upgrader() websocket.Upgrader {
	allowed := h.AllowedOrigin
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowed == "" {
				return true
			}
			return r.Header.Get("Origin") == allowed
		},
	}
}

// wsAuth authenticates a websocket upgrade request from the token query
// parameter, since browsers cannot set headers on ws connections.
func (h *Handler) wsAuth(c *gin.Context) (int64, bool) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return 0, false
	}

	userID, err := service.ParseJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return 0, false
	}
	return userID, true
}

// PresenceWS is the presence/notification endpoint: one connection per
// authenticated identity. Opening it registers presence, closing it
// unregisters.
func (h *Handler) PresenceWS(c *gin.Context) {
	userID, ok := h.wsAuth(c)
	if !ok {
		return
	}

	up := h.upgrader()
	conn, err := up.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(userID, conn)
	go client.RunPresence(h.Registry)
}

// GameWS is the session relay endpoint, parameterized by the room name
// both participants derive from the game.
func (h *Handler) GameWS(c *gin.Context) {
	userID, ok := h.wsAuth(c)
	if !ok {
		return
	}

	roomID := c.Param("room")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room required"})
		return
	}

	up := h.upgrader()
	conn, err := up.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(userID, conn)
	go client.RunSession(h.Hub, roomID)
}
