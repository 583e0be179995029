package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/YeldosQoja/Chess-backend/internal/logger"
)

type presenceRecord struct {
	client    *Client
	updatedAt time.Time
}

// Registry maps a user id to its single live presence connection. It is an
// injected instance owned by the server process, never package state.
type Registry struct {
	mu    sync.RWMutex
	users map[int64]presenceRecord
}

func NewRegistry() *Registry {
	return &Registry{users: make(map[int64]presenceRecord)}
}

// Register upserts the record for the user. A reconnect supersedes the old
// connection: the prior handle is closed and can be discarded by its pumps.
func (r *Registry) Register(userID int64, c *Client) {
	r.mu.Lock()
	prev, ok := r.users[userID]
	r.users[userID] = presenceRecord{client: c, updatedAt: time.Now()}
	r.mu.Unlock()

	if ok && prev.client != c {
		logger.Debug("presence superseded", "user_id", userID)
		prev.client.Close()
	}
	wsPresence.Set(float64(r.Count()))
}

// Unregister removes the record only if it still points at this client, so
// a stale connection closing late cannot evict its successor. Always safe
// to call, including for handles that were never registered.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	if rec, ok := r.users[c.UserID]; ok && rec.client == c {
		delete(r.users, c.UserID)
	}
	r.mu.Unlock()
	wsPresence.Set(float64(r.Count()))
}

// Lookup returns the user's live connection, or nil when offline.
func (r *Registry) Lookup(userID int64) *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.users[userID]; ok {
		return rec.client
	}
	return nil
}

// Online reports whether the user has a live presence connection.
func (r *Registry) Online(userID int64) bool {
	return r.Lookup(userID) != nil
}

// Notify pushes one event to the user's connection. Delivery is best
// effort: an offline user or a stale/backed-up handle drops the event.
func (r *Registry) Notify(userID int64, event any) bool {
	c := r.Lookup(userID)
	if c == nil {
		logger.Debug("notify skipped, user offline", "user_id", userID)
		return false
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("notify marshal failed", "user_id", userID, "error", err)
		return false
	}

	if !c.Enqueue(data) {
		logger.Warn("notify dropped, send buffer full", "user_id", userID)
		return false
	}
	return true
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
