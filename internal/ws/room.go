package ws

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/YeldosQoja/Chess-backend/internal/logger"
)

// Room is the ephemeral set of connections relaying events for one game.
// Membership is connection-lifetime scoped: join on connect, leave on
// disconnect. Nothing about a room is persisted.
type Room struct {
	ID string

	mu      sync.Mutex
	clients map[*Client]struct{}
	seq     uint64
}

func newRoom(id string) *Room {
	return &Room{
		ID:      id,
		clients: make(map[*Client]struct{}),
	}
}

// RoomName derives the room identifier for a game deterministically from
// the two participants and the game id, so both players arrive at the same
// name independently.
func RoomName(userA, userB, gameID int64) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("game-%d-%d-%d", gameID, userA, userB)
}

func (r *Room) join(c *Client) {
	r.mu.Lock()
	r.clients[c] = struct{}{}
	r.mu.Unlock()
}

// leave reports whether the room is now empty.
func (r *Room) leave(c *Client) bool {
	r.mu.Lock()
	delete(r.clients, c)
	empty := len(r.clients) == 0
	r.mu.Unlock()
	return empty
}

func (r *Room) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Broadcast stamps the event with the next room sequence number and
// delivers it to every member, including the originator. Delivery is best
// effort per member; a member that left while the snapshot was taken may
// still see this one event.
func (r *Room) Broadcast(ev *RoomEvent) {
	r.mu.Lock()
	r.seq++
	ev.Seq = r.seq
	members := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		members = append(members, c)
	}
	r.mu.Unlock()

	data, err := json.Marshal(ev)
	if err != nil {
		logger.Error("broadcast marshal failed", "room", r.ID, "error", err)
		return
	}

	for _, c := range members {
		if !c.Enqueue(data) {
			logger.Warn("broadcast dropped for member", "room", r.ID, "user_id", c.UserID)
		}
	}
	wsEventsRelayed.WithLabelValues(ev.Type).Inc()
}

// HandleCommand parses one inbound frame and rebroadcasts it as a typed
// event. Moves are relayed opaquely, there is no legality checking here.
func (r *Room) HandleCommand(c *Client, raw []byte) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		logger.Debug("bad frame", "room", r.ID, "user_id", c.UserID, "error", err)
		r.sendError(c, "malformed command")
		return
	}

	switch cmd.Command {
	case CmdMove:
		r.Broadcast(&RoomEvent{
			Type:   CmdMove,
			Player: cmd.Player,
			From:   cmd.From,
			To:     cmd.To,
		})
	case CmdPromote:
		r.Broadcast(&RoomEvent{
			Type:   CmdPromote,
			Player: cmd.Player,
			Square: cmd.Square,
			Piece:  cmd.Piece,
		})
	case CmdResign:
		// accepted but has no game effect yet; relayed so clients can
		// surface it
		r.Broadcast(&RoomEvent{
			Type:   CmdResign,
			Player: cmd.Player,
		})
	default:
		r.sendError(c, "unknown command: "+cmd.Command)
	}
}

// sendError goes to the offending sender only, never the room.
func (r *Room) sendError(c *Client, msg string) {
	data, err := json.Marshal(ErrorEvent{Type: "error", Message: msg})
	if err != nil {
		return
	}
	c.Enqueue(data)
}
