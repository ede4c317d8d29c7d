package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shencore/shen/pkg/realtime"
)

// HandleSessionStream upgrades to a WebSocket and pushes every state change
// of the session. The current state is sent first so clients never start
// from nothing. Messages are realtime.Event JSON objects.
func (s *Server) HandleSessionStream(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		s.writeError(w, http.StatusNotFound, "Streaming disabled", "Realtime updates are not available")
		return
	}
	id, c, ok := s.lookup(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logger.Debugf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	listenerID, events := s.hub.Register(id)
	defer s.hub.Unregister(id, listenerID)

	initial := realtime.Event{Type: realtime.EventState, Session: id, State: c.Snapshot().View(id)}
	if err := writeEvent(conn, initial); err != nil {
		return
	}
	lastVersion := initial.State.Version

	// Reader: handles pongs and notices the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(2 * pingInterval))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(2 * pingInterval))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			// Observers may run concurrently; never move a client backwards.
			if ev.State.Version <= lastVersion {
				continue
			}
			lastVersion = ev.State.Version
			if err := writeEvent(conn, ev); err != nil {
				logger.Debugf("websocket write failed for session %s: %v", id, err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev realtime.Event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(ev)
}
