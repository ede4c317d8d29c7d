package history

import (
	"context"

	"github.com/shencore/shen/pkg/search"
)

// Recorder wraps a search.Executor and records every successful call.
// Recording failures are logged and never fail the search.
type Recorder struct {
	next  search.Executor
	store *Store
}

func NewRecorder(next search.Executor, store *Store) *Recorder {
	return &Recorder{next: next, store: store}
}

func (r *Recorder) Execute(ctx context.Context, req search.Request) (*search.Response, error) {
	resp, err := r.next.Execute(ctx, req)
	if err != nil {
		return resp, err
	}

	e := Entry{
		Term: req.Term,
		Type: req.Type,
		Page: req.Page,
	}
	if resp != nil {
		e.ItemCount = len(resp.Items)
		if info := resp.SearchInfo(); info != nil {
			e.TotalResults = info.TotalResults
			e.SearchTime = info.SearchTime
		}
	}

	// The caller may cancel as soon as it has the response.
	if _, err := r.store.Record(context.WithoutCancel(ctx), e); err != nil {
		logger.Warnf("failed to record search %q: %v", req.Term, err)
	}
	return resp, nil
}
