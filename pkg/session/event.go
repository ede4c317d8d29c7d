package session

import "github.com/shencore/shen/pkg/search"

// Event is an input to Reduce. User triggers and call completions are both
// events so the transition table stays in one place.
type Event interface {
	isEvent()
}

// EditQuery replaces the search box text. It never triggers a call.
type EditQuery struct {
	Text string
}

// Submit starts a fresh search with the current query and type.
type Submit struct{}

// ChangeType selects a result type and re-runs the search when one has
// already been performed.
type ChangeType struct {
	Type search.Type
}

// LoadMore fetches the page after the current one and appends it.
type LoadMore struct{}

// SearchSucceeded completes the fresh search with sequence Seq.
type SearchSucceeded struct {
	Seq      uint64
	Response *search.Response
}

// SearchFailed completes the fresh search with sequence Seq.
type SearchFailed struct {
	Seq     uint64
	Failure *Failure
}

// MoreSucceeded completes the load more with sequence Seq.
type MoreSucceeded struct {
	Seq      uint64
	Page     int
	Response *search.Response
}

// MoreFailed completes the load more with sequence Seq.
type MoreFailed struct {
	Seq     uint64
	Failure *Failure
}

// SearchAbandoned ends the fresh search with sequence Seq when its caller
// went away before an answer arrived. No failure is recorded.
type SearchAbandoned struct {
	Seq uint64
}

// MoreAbandoned ends the load more with sequence Seq when its caller went
// away before an answer arrived.
type MoreAbandoned struct {
	Seq uint64
}

func (EditQuery) isEvent()       {}
func (Submit) isEvent()          {}
func (ChangeType) isEvent()      {}
func (LoadMore) isEvent()        {}
func (SearchSucceeded) isEvent() {}
func (SearchFailed) isEvent()    {}
func (MoreSucceeded) isEvent()   {}
func (MoreFailed) isEvent()      {}
func (SearchAbandoned) isEvent() {}
func (MoreAbandoned) isEvent()   {}

// CommandKind tells the controller which call category a command belongs to.
type CommandKind int

const (
	CommandSearch CommandKind = iota + 1
	CommandMore
)

func (k CommandKind) String() string {
	switch k {
	case CommandSearch:
		return "search"
	case CommandMore:
		return "more"
	}
	return "unknown"
}

// Command is an outbound call requested by a transition.
type Command struct {
	Kind    CommandKind
	Seq     uint64
	Request search.Request
}
