// Package session implements the interactive search session: query text,
// result type, accumulated results, pagination and the loading/error flags
// around each call to the search API.
//
// The state machine is a pure function, Reduce(State, Event), with one event
// per user trigger (EditQuery, Submit, ChangeType, LoadMore) and one per call
// completion. Reduce returns a Command when the transition needs an outbound
// call. Controller applies events under a lock, runs commands against a
// search.Executor and feeds the completion back through Reduce.
//
// Fresh searches and load mores are numbered per category. A completion is
// applied only if its number is the latest issued for its category, and a
// superseded call is cancelled, so a slow response can never overwrite the
// state produced by a newer request.
//
// Manager maps session ids to controllers for the web server.
package session
