package ws

import (
	"sync"
	"time"

	"github.com/YeldosQoja/Chess-backend/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second

	readLimit      = 4096
	sendBufferSize = 256
)

// Client is one live websocket connection for one user. The same type backs
// both the presence endpoint and the session relay endpoint; only the
// inbound message handling differs.
type Client struct {
	UserID int64
	Conn   *websocket.Conn
	Send   chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(userID int64, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// Enqueue queues an outbound frame without blocking. A full buffer means
// the connection is too slow to care about; the frame is dropped.
func (c *Client) Enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Close shuts the connection down; safe to call from any goroutine and
// more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.Conn != nil {
			_ = c.Conn.Close()
		}
	})
}

// RunPresence registers the client and blocks until the connection drops.
// Unregistering is unconditional, it runs on every exit path.
func (c *Client) RunPresence(reg *Registry) {
	reg.Register(c.UserID, c)
	defer reg.Unregister(c)

	logger.Info("presence connected", "user_id", c.UserID)
	defer logger.Info("presence disconnected", "user_id", c.UserID)

	go c.writePump()
	// the presence endpoint pushes notifications only; inbound frames are
	// read to keep the connection alive and otherwise ignored
	c.readPump(nil)
}

// RunSession joins the room and relays commands until the connection drops.
// Leaving the room is unconditional, it runs on every exit path.
func (c *Client) RunSession(hub *Hub, roomID string) {
	room := hub.Join(roomID, c)
	defer hub.Leave(room, c)

	logger.Info("session connected", "user_id", c.UserID, "room", roomID)
	defer logger.Info("session disconnected", "user_id", c.UserID, "room", roomID)

	go c.writePump()
	c.readPump(func(msg []byte) {
		room.HandleCommand(c, msg)
	})
}

// readPump owns the read side of the connection. It returns when the peer
// goes away or misbehaves.
func (c *Client) readPump(onMessage func([]byte)) {
	defer c.Close()

	c.Conn.SetReadLimit(readLimit)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("read error", "user_id", c.UserID, "error", err)
			}
			return
		}
		if onMessage != nil {
			onMessage(msg)
		}
	}
}

// writePump owns the write side of the connection and keeps it alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("write error", "user_id", c.UserID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
