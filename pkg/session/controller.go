package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shencore/shen/pkg/i18n"
	"github.com/shencore/shen/pkg/log"
	"github.com/shencore/shen/pkg/search"
)

var logger = log.ForService("session")

// Observer is called with the new state after every change. Observers run
// outside the controller lock; states may arrive out of order across
// goroutines, so consumers should compare Version.
type Observer func(State)

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// Controller owns one session state and sequences calls to a search.Executor
// in response to events. It is safe for concurrent use.
type Controller struct {
	exec     search.Executor
	fallback string

	mu         sync.Mutex
	state      State
	observers  []Observer
	calls      map[CommandKind]inflight
	lastActive time.Time

	wg  sync.WaitGroup
	now func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithLocale sets the display locale used for the generic connection error.
func WithLocale(locale string) Option {
	return func(c *Controller) {
		c.fallback = i18n.Printer(locale).Sprintf(i18n.ConnectionError)
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithClock overrides the clock used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a controller in the initial state.
func NewController(exec search.Executor, opts ...Option) *Controller {
	c := &Controller{
		exec:     exec,
		fallback: i18n.Printer("").Sprintf(i18n.ConnectionError),
		state:    NewState(),
		calls:    make(map[CommandKind]inflight),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastActive = c.now()
	return c
}

// Observe registers an additional observer.
func (c *Controller) Observe(o Observer) {
	if o == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastActive returns the time of the last dispatched user event.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Dispatch applies ev and, when it requires a call, runs it before
// returning the resulting state.
func (c *Controller) Dispatch(ctx context.Context, ev Event) State {
	next, cmd, callCtx, cancel := c.begin(ctx, ev)
	if cmd == nil {
		return next
	}
	return c.run(callCtx, cancel, cmd)
}

// DispatchAsync applies ev and runs any resulting call on a goroutine. It
// returns the intermediate state (with Loading or LoadingMore set). The call
// is detached from ctx cancellation so it can outlive an HTTP request, but
// it is cancelled when a newer call supersedes it.
func (c *Controller) DispatchAsync(ctx context.Context, ev Event) State {
	next, cmd, callCtx, cancel := c.begin(context.WithoutCancel(ctx), ev)
	if cmd == nil {
		return next
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(callCtx, cancel, cmd)
	}()
	return next
}

// Wait blocks until every call started by DispatchAsync has completed.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight calls and waits for them to finish.
func (c *Controller) Close() {
	c.mu.Lock()
	for kind, call := range c.calls {
		call.cancel()
		delete(c.calls, kind)
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// SetQuery updates the search box text.
func (c *Controller) SetQuery(text string) State {
	return c.Dispatch(context.Background(), EditQuery{Text: text})
}

// Search runs a fresh search with the current query and type.
func (c *Controller) Search(ctx context.Context) State {
	return c.Dispatch(ctx, Submit{})
}

// SetType changes the result type, re-running the search when appropriate.
func (c *Controller) SetType(ctx context.Context, t search.Type) State {
	return c.Dispatch(ctx, ChangeType{Type: t})
}

// LoadMore fetches and appends the next page.
func (c *Controller) LoadMore(ctx context.Context) State {
	return c.Dispatch(ctx, LoadMore{})
}

// begin reduces a user event under the lock and registers the call it
// requires, cancelling whatever call it supersedes.
func (c *Controller) begin(ctx context.Context, ev Event) (State, *Command, context.Context, context.CancelFunc) {
	c.mu.Lock()
	c.lastActive = c.now()
	prev := c.state
	next, cmd := Reduce(prev, ev)
	changed := !next.same(prev)
	if changed {
		next.Version = prev.Version + 1
		c.state = next
	}

	var callCtx context.Context
	var cancel context.CancelFunc
	if cmd != nil {
		callCtx, cancel = context.WithCancel(ctx)
		if cmd.Kind == CommandSearch {
			c.cancelLocked(CommandSearch)
			c.cancelLocked(CommandMore)
		} else {
			c.cancelLocked(CommandMore)
		}
		c.calls[cmd.Kind] = inflight{seq: cmd.Seq, cancel: cancel}
	}
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	if changed {
		notify(observers, next)
	}
	if cmd != nil {
		logger.Debugf("issuing %s seq=%d term=%q type=%s page=%d", cmd.Kind, cmd.Seq, cmd.Request.Term, cmd.Request.Type, cmd.Request.Page)
	}
	return next, cmd, callCtx, cancel
}

func (c *Controller) cancelLocked(kind CommandKind) {
	if call, ok := c.calls[kind]; ok {
		call.cancel()
		delete(c.calls, kind)
	}
}

// run executes cmd and feeds the completion back through Reduce. Stale
// completions are dropped by the reducer. A call whose context is done
// clears its loading flag without recording a failure.
func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, cmd *Command) State {
	defer cancel()

	resp, err := c.execute(ctx, cmd.Request)

	var ev Event
	if err != nil && ctx.Err() != nil {
		// The caller gave up or a newer call superseded this one. Either
		// way there is no answer to show.
		logger.Debugf("%s seq=%d abandoned: %v", cmd.Kind, cmd.Seq, err)
		if cmd.Kind == CommandSearch {
			ev = SearchAbandoned{Seq: cmd.Seq}
		} else {
			ev = MoreAbandoned{Seq: cmd.Seq}
		}
	} else if err != nil {
		failure := c.toFailure(err)
		logger.Warnf("%s seq=%d failed: %v", cmd.Kind, cmd.Seq, err)
		if cmd.Kind == CommandSearch {
			ev = SearchFailed{Seq: cmd.Seq, Failure: failure}
		} else {
			ev = MoreFailed{Seq: cmd.Seq, Failure: failure}
		}
	} else if cmd.Kind == CommandSearch {
		ev = SearchSucceeded{Seq: cmd.Seq, Response: resp}
	} else {
		ev = MoreSucceeded{Seq: cmd.Seq, Page: cmd.Request.Page, Response: resp}
	}

	c.mu.Lock()
	if call, ok := c.calls[cmd.Kind]; ok && call.seq == cmd.Seq {
		delete(c.calls, cmd.Kind)
	}
	prev := c.state
	next, _ := Reduce(prev, ev)
	changed := !next.same(prev)
	if changed {
		next.Version = prev.Version + 1
		c.state = next
	} else {
		logger.Debugf("dropped stale %s completion seq=%d", cmd.Kind, cmd.Seq)
	}
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	if changed {
		notify(observers, next)
	}
	return next
}

// execute calls the executor and turns a panic into an error so the loading
// flags are always cleared.
func (c *Controller) execute(ctx context.Context, req search.Request) (resp *search.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("search executor panicked: %v", r)
		}
	}()

	resp, err = c.exec.Execute(ctx, req)
	if err == nil && resp == nil {
		resp = &search.Response{}
	}
	return resp, err
}

// toFailure keeps upstream messages verbatim and replaces everything else
// with the localized generic message.
func (c *Controller) toFailure(err error) *Failure {
	var apiErr *search.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &Failure{Kind: FailureUpstream, Message: apiErr.Message}
	}
	return &Failure{Kind: FailureTransport, Message: c.fallback}
}

func notify(observers []Observer, s State) {
	for _, o := range observers {
		o(s)
	}
}
