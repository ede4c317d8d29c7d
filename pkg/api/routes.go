package api

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	gz := func(h http.HandlerFunc) http.Handler { return gzhttp.GzipHandler(h) }

	mux.Handle("GET /api/search", gz(s.HandleSearch))
	mux.Handle("POST /api/sessions", gz(s.HandleCreateSession))
	mux.Handle("GET /api/sessions/{id}", gz(s.HandleGetSession))
	mux.Handle("DELETE /api/sessions/{id}", gz(s.HandleDeleteSession))
	mux.Handle("POST /api/sessions/{id}/query", gz(s.HandleSessionQuery))
	mux.Handle("POST /api/sessions/{id}/search", gz(s.HandleSessionSearch))
	mux.Handle("POST /api/sessions/{id}/type", gz(s.HandleSessionType))
	mux.Handle("POST /api/sessions/{id}/more", gz(s.HandleSessionMore))
	mux.Handle("GET /api/history", gz(s.HandleHistory))
	mux.HandleFunc("GET /health", s.HandleHealth)

	// Hijacked connections cannot go through the gzip writer.
	mux.HandleFunc("GET /api/sessions/{id}/ws", s.HandleSessionStream)
}
