package session

import (
	"strings"

	"github.com/shencore/shen/pkg/search"
)

// FailureKind distinguishes upstream API errors from transport failures.
type FailureKind int

const (
	// FailureUpstream carries the message reported by the search API.
	FailureUpstream FailureKind = iota + 1
	// FailureTransport carries the localized generic connection message.
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureUpstream:
		return "upstream"
	case FailureTransport:
		return "transport"
	}
	return "unknown"
}

// Failure is the last error shown to the user. Message is untrusted text and
// must only ever be rendered escaped.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// State is the interactive search session. Values are never mutated in
// place: every transition produces a new State, and Items slices are never
// shared between a state and its successor when they differ.
type State struct {
	// Query is the text currently in the search box.
	Query string
	// Term is the trimmed query of the last fresh search. Load more pages
	// through Term so edits to Query do not leak into the result list.
	Term        string
	Type        search.Type
	Items       []search.Item
	Page        int
	HasSearched bool
	Loading     bool
	LoadingMore bool
	Err         *Failure
	Info        *search.SearchInformation
	HasNextPage bool
	// Version increases on every change applied by a Controller.
	Version uint64

	searchSeq uint64
	moreSeq   uint64
}

// NewState returns the initial session state.
func NewState() State {
	return State{
		Type: search.TypeAll,
		Page: 1,
	}
}

// CanLoadMore reports whether a load more is currently allowed.
func (s State) CanLoadMore() bool {
	return s.HasNextPage && !s.Loading && !s.LoadingMore && s.Term != ""
}

// Busy reports whether any call is in flight.
func (s State) Busy() bool {
	return s.Loading || s.LoadingMore
}

func (s State) trimmedQuery() string {
	return strings.TrimSpace(s.Query)
}

// same reports whether two states are indistinguishable, treating the item
// list by identity. Reduce returns its input unchanged for no-op events, so
// this is enough to detect them.
func (s State) same(o State) bool {
	if s.Query != o.Query || s.Term != o.Term || s.Type != o.Type || s.Page != o.Page ||
		s.HasSearched != o.HasSearched || s.Loading != o.Loading || s.LoadingMore != o.LoadingMore ||
		s.Err != o.Err || s.Info != o.Info || s.HasNextPage != o.HasNextPage ||
		s.searchSeq != o.searchSeq || s.moreSeq != o.moreSeq {
		return false
	}
	if len(s.Items) != len(o.Items) {
		return false
	}
	return len(s.Items) == 0 || &s.Items[0] == &o.Items[0]
}
