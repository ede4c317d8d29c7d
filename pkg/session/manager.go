package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Factory builds the controller for a new session id.
type Factory func(id string) *Controller

// Manager keeps one Controller per browser session and evicts sessions that
// have been idle longer than the TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Controller
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a manager. A ttl <= 0 disables eviction.
func NewManager(factory Factory, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Controller),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session and returns its id.
func (m *Manager) Create() (string, *Controller) {
	id := uuid.NewString()
	c := m.factory(id)

	m.mu.Lock()
	m.sessions[id] = c
	m.mu.Unlock()

	logger.Debugf("created session %s", id)
	return id, c
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Controller, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.sessions[id]
	return c, ok
}

// GetOrCreate returns the session with id, or a new session when id is
// unknown or malformed. The returned id is the one to hand back to the client.
func (m *Manager) GetOrCreate(id string) (string, *Controller) {
	if c, ok := m.Get(id); ok {
		return id, c
	}
	return m.Create()
}

// Remove closes and forgets the session with id.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	c, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		c.Close()
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Evict removes sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Evict() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	var stale []*Controller
	m.mu.Lock()
	for id, c := range m.sessions {
		if c.LastActive().Before(cutoff) {
			stale = append(stale, c)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, c := range stale {
		c.Close()
	}
	if len(stale) > 0 {
		logger.Debugf("evicted %d idle sessions", len(stale))
	}
	return len(stale)
}

// Run evicts idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Evict()
		}
	}
}

// Close closes every session.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Controller)
	m.mu.Unlock()

	for _, c := range all {
		c.Close()
	}
}
