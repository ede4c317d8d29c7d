package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shencore/shen/pkg/history"
	"github.com/shencore/shen/pkg/i18n"
	"github.com/shencore/shen/pkg/log"
	"github.com/shencore/shen/pkg/realtime"
	"github.com/shencore/shen/pkg/search"
	"github.com/shencore/shen/pkg/session"
)

var logger = log.ForService("api")

const (
	maxBodyBytes = 64 << 10
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
)

type Server struct {
	sessions *session.Manager
	exec     search.Executor
	hub      *realtime.Hub
	history  *history.Store
	fallback string
	upgrader websocket.Upgrader
}

// NewServer creates the API server. hub and store may be nil, which disables
// the session stream and the history endpoint respectively.
func NewServer(sessions *session.Manager, exec search.Executor, hub *realtime.Hub, store *history.Store, locale string) *Server {
	return &Server{
		sessions: sessions,
		exec:     exec,
		hub:      hub,
		history:  store,
		fallback: i18n.Printer(locale).Sprintf(i18n.ConnectionError),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

// decodeBody reads an optional JSON body into v. An empty body is not an error.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
