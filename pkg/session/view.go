package session

import "github.com/shencore/shen/pkg/search"

// View is the JSON representation of a State sent over the API and the
// realtime stream.
type View struct {
	ID          string                    `json:"id,omitempty"`
	Query       string                    `json:"query"`
	Term        string                    `json:"term,omitempty"`
	Type        search.Type               `json:"type"`
	Items       []search.Item             `json:"items"`
	Page        int                       `json:"page"`
	HasSearched bool                      `json:"has_searched"`
	Loading     bool                      `json:"loading"`
	LoadingMore bool                      `json:"loading_more"`
	HasNextPage bool                      `json:"has_next_page"`
	Error       string                    `json:"error,omitempty"`
	ErrorKind   string                    `json:"error_kind,omitempty"`
	Info        *search.SearchInformation `json:"search_information,omitempty"`
	Version     uint64                    `json:"version"`
}

// View converts s for transport. Items is never nil so clients always see
// an array.
func (s State) View(id string) View {
	items := s.Items
	if items == nil {
		items = []search.Item{}
	}
	v := View{
		ID:          id,
		Query:       s.Query,
		Term:        s.Term,
		Type:        s.Type,
		Items:       items,
		Page:        s.Page,
		HasSearched: s.HasSearched,
		Loading:     s.Loading,
		LoadingMore: s.LoadingMore,
		HasNextPage: s.HasNextPage,
		Info:        s.Info,
		Version:     s.Version,
	}
	if s.Err != nil {
		v.Error = s.Err.Message
		v.ErrorKind = s.Err.Kind.String()
	}
	return v
}
