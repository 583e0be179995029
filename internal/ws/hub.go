package ws

import (
	"sync"

	"github.com/YeldosQoja/Chess-backend/internal/logger"
)

// Hub owns the live rooms. Rooms come into existence when the first
// connection joins and disappear when the last one leaves.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*Room)}
}

// Join adds the client to the named room, creating it on first join. The
// membership change happens under the hub lock so a concurrent Leave cannot
// drop the room between the map lookup and the join.
func (h *Hub) Join(roomID string, c *Client) *Room {
	h.mu.Lock()
	room, ok := h.rooms[roomID]
	if !ok {
		room = newRoom(roomID)
		h.rooms[roomID] = room
		logger.Debug("room opened", "room", roomID)
	}
	room.join(c)
	h.mu.Unlock()

	wsRooms.Set(float64(h.RoomCount()))
	return room
}

// Leave removes the client and drops the room once it is empty. A room
// that became non-empty again between the member's leave and our check is
// kept.
func (h *Hub) Leave(room *Room, c *Client) {
	if room.leave(c) {
		h.mu.Lock()
		if cur, ok := h.rooms[room.ID]; ok && cur == room && room.size() == 0 {
			delete(h.rooms, room.ID)
			logger.Debug("room closed", "room", room.ID)
		}
		h.mu.Unlock()
	}
	wsRooms.Set(float64(h.RoomCount()))
}

// Lookup returns the named room, or nil if nobody is in it.
func (h *Hub) Lookup(roomID string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[roomID]
}

func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
