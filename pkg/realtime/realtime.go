// Package realtime fans out session state changes to live listeners such
// as WebSocket connections. Delivery is best effort and in-process; nothing
// is persisted or replayed.
package realtime

import (
	"sync"

	"github.com/shencore/shen/pkg/session"
)

// EventState is the only event type produced today.
const EventState = "state"

// Event is the envelope delivered to listeners.
type Event struct {
	Type    string       `json:"type"`
	Session string       `json:"session"`
	State   session.View `json:"state"`
}

// Hub is an in-memory dispatcher keyed by session id. Each listener gets a
// buffered channel. When a listener falls behind, its oldest pending event is
// discarded so the newest state always gets through.
//
// The hub is concurrency-safe.
type Hub struct {
	mu        sync.Mutex
	listeners map[string]map[uint64]chan Event
	nextID    uint64
	bufSize   int
}

// NewHub constructs a hub with the given per-listener buffer size.
// If bufSize <= 0, a default of 8 is used.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 8
	}
	return &Hub{
		listeners: make(map[string]map[uint64]chan Event),
		bufSize:   bufSize,
	}
}

// Register adds a listener for sessionID and returns its id and channel.
// Callers must later Unregister to release resources.
func (h *Hub) Register(sessionID string) (uint64, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, h.bufSize)
	if h.listeners[sessionID] == nil {
		h.listeners[sessionID] = make(map[uint64]chan Event)
	}
	h.listeners[sessionID][id] = ch
	return id, ch
}

// Unregister removes the listener and closes its channel. Unknown ids are
// ignored.
func (h *Hub) Unregister(sessionID string, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.listeners[sessionID]
	if !ok {
		return
	}
	if ch, ok := set[id]; ok {
		delete(set, id)
		close(ch)
	}
	if len(set) == 0 {
		delete(h.listeners, sessionID)
	}
}

// Publish delivers view to every listener of sessionID.
func (h *Hub) Publish(sessionID string, view session.View) {
	ev := Event{Type: EventState, Session: sessionID, State: view}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.listeners[sessionID] {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Full: make room by dropping the oldest event.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

// Observer returns a session observer that publishes every state change of
// sessionID.
func (h *Hub) Observer(sessionID string) session.Observer {
	return func(s session.State) {
		h.Publish(sessionID, s.View(sessionID))
	}
}

// Size returns the number of active listeners across all sessions.
func (h *Hub) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, set := range h.listeners {
		n += len(set)
	}
	return n
}

// Listeners returns the number of active listeners for sessionID.
func (h *Hub) Listeners(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[sessionID])
}
