package api

import (
	"time"

	"github.com/shencore/shen/pkg/history"
	"github.com/shencore/shen/pkg/search"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	// Kind is "upstream" when Message comes from the search API and
	// "transport" when the API could not be reached.
	Kind string `json:"kind,omitempty"`
}

type SearchResponse struct {
	Query             string                    `json:"query"`
	Type              search.Type               `json:"type"`
	Page              int                       `json:"page"`
	Items             []search.Item             `json:"items"`
	Count             int                       `json:"count"`
	SearchInformation *search.SearchInformation `json:"search_information,omitempty"`
	HasNextPage       bool                      `json:"has_next_page"`
	NextPage          int                       `json:"next_page,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Sessions  int       `json:"sessions"`
}

type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
	Count   int             `json:"count"`
}

type QueryRequest struct {
	Query string `json:"query"`
}

// TypeRequest selects a result type. A non-nil Query replaces the search
// box text first.
type TypeRequest struct {
	Type  string  `json:"type"`
	Query *string `json:"query,omitempty"`
}

// SearchRequest optionally replaces the query and type before a fresh search.
type SearchRequest struct {
	Query *string `json:"query,omitempty"`
	Type  string  `json:"type,omitempty"`
}
