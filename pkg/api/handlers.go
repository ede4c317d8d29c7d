package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shencore/shen/pkg/search"
	"github.com/shencore/shen/pkg/session"
	"github.com/shencore/shen/pkg/version"
)

// HandleSearch runs a single stateless search.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := search.ParseRequest(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid parameters", err.Error())
		return
	}
	if req.Term == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query parameter", "Query parameter 'q' is required")
		return
	}

	resp, err := s.exec.Execute(r.Context(), req)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}

	items := resp.Items
	if items == nil {
		items = []search.Item{}
	}
	out := SearchResponse{
		Query:             req.Term,
		Type:              req.Type,
		Page:              req.Page,
		Items:             items,
		Count:             len(items),
		SearchInformation: resp.SearchInfo(),
		HasNextPage:       resp.HasNextPage(),
	}
	if out.HasNextPage {
		out.NextPage = req.Page + 1
	}
	s.writeJSON(w, http.StatusOK, out)
}

// writeSearchError keeps upstream messages and hides transport details
// behind the localized generic message.
func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	var apiErr *search.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		s.writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   "Search failed",
			Message: apiErr.Message,
			Kind:    session.FailureUpstream.String(),
		})
		return
	}
	logger.Warnf("search failed: %v", err)
	s.writeJSON(w, http.StatusBadGateway, ErrorResponse{
		Error:   "Search failed",
		Message: s.fallback,
		Kind:    session.FailureTransport.String(),
	})
}

func (s *Server) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, c := s.sessions.Create()
	s.writeJSON(w, http.StatusCreated, c.Snapshot().View(id))
}

func (s *Server) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, c.Snapshot().View(id))
}

func (s *Server) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.sessions.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleSessionQuery(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body QueryRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, c.SetQuery(body.Query).View(id))
}

// HandleSessionSearch submits a fresh search. The body may replace the query
// and the type first.
func (s *Server) HandleSessionSearch(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body SearchRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}

	if body.Query != nil {
		c.SetQuery(*body.Query)
	}
	if body.Type != "" {
		t, err := search.ParseType(body.Type)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid type", err.Error())
			return
		}
		if current := c.Snapshot(); current.Type != t {
			// Changing the type of a session that already searched runs
			// the search itself.
			if current.HasSearched {
				s.dispatch(w, r, id, c, session.ChangeType{Type: t})
				return
			}
			c.Dispatch(r.Context(), session.ChangeType{Type: t})
		}
	}
	s.dispatch(w, r, id, c, session.Submit{})
}

func (s *Server) HandleSessionType(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body TypeRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	t, err := search.ParseType(body.Type)
	if err != nil || body.Type == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid type", "type must be one of all, image, video")
		return
	}
	if body.Query != nil {
		c.SetQuery(*body.Query)
	}
	s.dispatch(w, r, id, c, session.ChangeType{Type: t})
}

func (s *Server) HandleSessionMore(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.dispatch(w, r, id, c, session.LoadMore{})
}

// dispatch applies ev and answers with the resulting view. With async=true
// the call runs in the background and the loading state is returned with
// 202; progress is then visible through GET or the stream.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, id string, c *session.Controller, ev session.Event) {
	if async, _ := strconv.ParseBool(r.URL.Query().Get("async")); async {
		state := c.DispatchAsync(r.Context(), ev)
		status := http.StatusOK
		if state.Busy() {
			status = http.StatusAccepted
		}
		s.writeJSON(w, status, state.View(id))
		return
	}
	s.writeJSON(w, http.StatusOK, c.Dispatch(r.Context(), ev).View(id))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, *session.Controller, bool) {
	id := r.PathValue("id")
	c, ok := s.sessions.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "Session not found", "Session '"+id+"' does not exist or has expired")
		return "", nil, false
	}
	return id, c, true
}

func (s *Server) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, http.StatusNotFound, "History disabled", "Search history is disabled in the configuration")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read history", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries, Count: len(entries)})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
		Sessions:  s.sessions.Len(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
