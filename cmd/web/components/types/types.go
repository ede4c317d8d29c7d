package types

import (
	"html/template"

	"github.com/shencore/shen/pkg/search"
)

// PageData represents data passed to templates
type PageData struct {
	Title     string
	Lang      string
	Dir       string
	SessionID string
	Version   string

	Query   string
	Type    search.Type
	Filters []Filter
	Labels  Labels

	Cards       []Card
	LayoutClass string
	Summary     string
	Error       string
	ErrorKind   string

	HasSearched  bool
	Loading      bool
	LoadingMore  bool
	CanLoadMore  bool
	StateVersion uint64
}

// Filter is one button of the type selector.
type Filter struct {
	Type   search.Type
	Label  string
	Active bool
}

// Labels are the localized strings of the page chrome.
type Labels struct {
	Placeholder  string
	SearchButton string
	LoadMore     string
	Loading      string
	NoResults    string
	SearchFailed string
}

// Card is a rendered search result.
type Card struct {
	Key  string
	HTML template.HTML
}

// Empty reports whether a completed search produced nothing to show.
func (p PageData) Empty() bool {
	return p.HasSearched && !p.Loading && p.Error == "" && len(p.Cards) == 0
}
