package session

import (
	"testing"

	"github.com/shencore/shen/pkg/search"
)

func items(links ...string) []search.Item {
	out := make([]search.Item, len(links))
	for i, l := range links {
		out[i] = search.Item{Title: l, Link: "https://" + l + ".example"}
	}
	return out
}

func page(hasNext bool, links ...string) *search.Response {
	r := &search.Response{
		Items:             items(links...),
		SearchInformation: &search.SearchInformation{FormattedTotalResults: "100", FormattedSearchTime: "0.12"},
	}
	if hasNext {
		r.Queries = &search.Queries{NextPage: []search.QueryInfo{{StartIndex: 11}}}
	}
	return r
}

func titles(s State) []string {
	out := make([]string, len(s.Items))
	for i, it := range s.Items {
		out[i] = it.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// searched returns a state after a successful fresh search for query.
func searched(t *testing.T, query string, typ search.Type, resp *search.Response) State {
	t.Helper()
	s := NewState()
	s, _ = Reduce(s, EditQuery{Text: query})
	s, _ = Reduce(s, ChangeType{Type: typ})
	s, cmd := Reduce(s, Submit{})
	if cmd == nil {
		t.Fatal("expected a search command")
	}
	s, _ = Reduce(s, SearchSucceeded{Seq: cmd.Seq, Response: resp})
	return s
}

func TestReduceEditQuery(t *testing.T) {
	s, cmd := Reduce(NewState(), EditQuery{Text: "cats"})
	if cmd != nil {
		t.Fatalf("editing the query must not issue a call, got %+v", cmd)
	}
	if s.Query != "cats" || s.HasSearched || s.Loading {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestReduceSubmitEmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		start := NewState()
		start.Query = q

		s, cmd := Reduce(start, Submit{})
		if cmd != nil {
			t.Errorf("query %q: expected no command, got %+v", q, cmd)
		}
		if !s.same(start) {
			t.Errorf("query %q: state changed: %+v", q, s)
		}
	}
}

func TestReduceFreshSearch(t *testing.T) {
	s := NewState()
	s, _ = Reduce(s, EditQuery{Text: "  cats  "})
	s, cmd := Reduce(s, Submit{})

	if cmd == nil || cmd.Kind != CommandSearch {
		t.Fatalf("expected search command, got %+v", cmd)
	}
	if cmd.Request != (search.Request{Term: "cats", Type: search.TypeAll, Page: 1}) {
		t.Errorf("unexpected request %+v", cmd.Request)
	}
	if !s.Loading || !s.HasSearched || s.Page != 1 || s.Items != nil || s.Err != nil {
		t.Errorf("unexpected in-flight state %+v", s)
	}

	s, next := Reduce(s, SearchSucceeded{Seq: cmd.Seq, Response: page(true, "A", "B")})
	if next != nil {
		t.Errorf("completion must not issue a call")
	}
	if !equalStrings(titles(s), []string{"A", "B"}) {
		t.Errorf("items = %v, want [A B]", titles(s))
	}
	if s.Page != 1 || s.Loading || !s.HasNextPage {
		t.Errorf("unexpected state %+v", s)
	}
	if s.Info == nil || s.Info.FormattedTotalResults != "100" {
		t.Errorf("search information not recorded: %+v", s.Info)
	}
}

func TestReduceFreshSearchReplacesResults(t *testing.T) {
	s := searched(t, "cats", search.TypeAll, page(true, "A", "B"))
	s, _ = Reduce(s, EditQuery{Text: "dogs"})
	s, cmd := Reduce(s, Submit{})
	if s.Items != nil {
		t.Fatalf("fresh search must discard results, got %v", titles(s))
	}
	s, _ = Reduce(s, SearchSucceeded{Seq: cmd.Seq, Response: page(false, "X")})
	if !equalStrings(titles(s), []string{"X"}) {
		t.Errorf("items = %v, want [X]", titles(s))
	}
}

func TestReduceFreshSearchFailure(t *testing.T) {
	s := NewState()
	s, _ = Reduce(s, EditQuery{Text: "cats"})
	s, cmd := Reduce(s, Submit{})

	s, _ = Reduce(s, SearchFailed{Seq: cmd.Seq, Failure: &Failure{Kind: FailureUpstream, Message: "quota exceeded"}})
	if s.Loading {
		t.Error("loading flag must be cleared")
	}
	if len(s.Items) != 0 {
		t.Errorf("results must stay empty, got %v", titles(s))
	}
	if s.Err == nil || s.Err.Message != "quota exceeded" || s.Err.Kind != FailureUpstream {
		t.Errorf("unexpected error %+v", s.Err)
	}

	// A new search clears the error.
	s, _ = Reduce(s, Submit{})
	if s.Err != nil {
		t.Errorf("error should be cleared on submit, got %+v", s.Err)
	}
}

func TestReduceLoadMore(t *testing.T) {
	s := searched(t, "cats", search.TypeAll, page(true, "A", "B"))

	s, cmd := Reduce(s, LoadMore{})
	if cmd == nil || cmd.Kind != CommandMore {
		t.Fatalf("expected more command, got %+v", cmd)
	}
	if cmd.Request != (search.Request{Term: "cats", Type: search.TypeAll, Page: 2}) {
		t.Errorf("unexpected request %+v", cmd.Request)
	}
	if !s.LoadingMore {
		t.Error("loading more flag should be set")
	}

	// Disabled while in flight.
	if _, again := Reduce(s, LoadMore{}); again != nil {
		t.Error("load more must be disabled while one is in flight")
	}

	s, _ = Reduce(s, MoreSucceeded{Seq: cmd.Seq, Page: 2, Response: page(true, "C", "D")})
	if !equalStrings(titles(s), []string{"A", "B", "C", "D"}) {
		t.Errorf("items = %v, want [A B C D]", titles(s))
	}
	if s.Page != 2 || s.LoadingMore {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestReduceLoadMoreDoesNotAliasPreviousState(t *testing.T) {
	s := searched(t, "cats", search.TypeAll, page(true, "A", "B"))
	before := s

	s, cmd := Reduce(s, LoadMore{})
	s, _ = Reduce(s, MoreSucceeded{Seq: cmd.Seq, Page: 2, Response: page(true, "C")})

	if !equalStrings(titles(before), []string{"A", "B"}) {
		t.Errorf("previous state mutated: %v", titles(before))
	}
	s.Items[0].Title = "changed"
	if before.Items[0].Title != "A" {
		t.Error("states share a backing array")
	}
}

func TestReduceLoadMoreFailure(t *testing.T) {
	s := searched(t, "cats", search.TypeAll, page(true, "A", "B"))

	s, cmd := Reduce(s, LoadMore{})
	s, _ = Reduce(s, MoreFailed{Seq: cmd.Seq, Failure: &Failure{Kind: FailureTransport, Message: "offline"}})

	if !equalStrings(titles(s), []string{"A", "B"}) {
		t.Errorf("items = %v, want [A B]", titles(s))
	}
	if s.Page != 1 {
		t.Errorf("page = %d, want 1", s.Page)
	}
	if s.LoadingMore || s.Loading {
		t.Errorf("flags not cleared: %+v", s)
	}
	if s.Err == nil || s.Err.Message != "offline" {
		t.Errorf("unexpected error %+v", s.Err)
	}
}

func TestReduceLoadMorePreconditions(t *testing.T) {
	t.Run("before any search", func(t *testing.T) {
		s := NewState()
		s.Query = "cats"
		if _, cmd := Reduce(s, LoadMore{}); cmd != nil {
			t.Error("load more before searching must be a no-op")
		}
	})

	t.Run("no continuation token", func(t *testing.T) {
		s := searched(t, "cats", search.TypeAll, page(false, "A"))
		if _, cmd := Reduce(s, LoadMore{}); cmd != nil {
			t.Error("load more without next page must be a no-op")
		}
	})

	t.Run("while fresh search in flight", func(t *testing.T) {
		s := searched(t, "cats", search.TypeAll, page(true, "A"))
		s, _ = Reduce(s, Submit{})
		if _, cmd := Reduce(s, LoadMore{}); cmd != nil {
			t.Error("load more during a fresh search must be a no-op")
		}
	})
}

func TestReduceLoadMoreUsesSubmittedTerm(t *testing.T) {
	s := searched(t, "cats", search.TypeAll, page(true, "A"))
	s, _ = Reduce(s, EditQuery{Text: "dogs"})

	_, cmd := Reduce(s, LoadMore{})
	if cmd == nil || cmd.Request.Term != "cats" {
		t.Fatalf("load more should page the submitted term, got %+v", cmd)
	}
}

func TestReduceChangeType(t *testing.T) {
	t.Run("before any search", func(t *testing.T) {
		s := NewState()
		s.Query = "dogs"
		s, cmd := Reduce(s, ChangeType{Type: search.TypeImage})
		if cmd != nil {
			t.Error("selecting a filter before searching must not issue a call")
		}
		if s.Type != search.TypeImage {
			t.Errorf("type = %s", s.Type)
		}
	})

	t.Run("after a search re-runs", func(t *testing.T) {
		s := searched(t, "dogs", search.TypeAll, page(true, "A", "B"))
		s, cmd := Reduce(s, LoadMore{})
		s, _ = Reduce(s, MoreSucceeded{Seq: cmd.Seq, Page: 2, Response: page(true, "C")})

		s, cmd = Reduce(s, ChangeType{Type: search.TypeImage})
		if cmd == nil || cmd.Kind != CommandSearch {
			t.Fatalf("expected a fresh search, got %+v", cmd)
		}
		if cmd.Request != (search.Request{Term: "dogs", Type: search.TypeImage, Page: 1}) {
			t.Errorf("unexpected request %+v", cmd.Request)
		}
		if s.Page != 1 || s.Items != nil || !s.Loading {
			t.Errorf("prior results must be discarded: %+v", s)
		}
	})

	t.Run("after a search with empty query", func(t *testing.T) {
		s := searched(t, "dogs", search.TypeAll, page(true, "A"))
		s, _ = Reduce(s, EditQuery{Text: "  "})
		s, cmd := Reduce(s, ChangeType{Type: search.TypeVideo})
		if cmd != nil {
			t.Error("empty query must not re-run")
		}
		if s.Type != search.TypeVideo {
			t.Errorf("type = %s", s.Type)
		}
	})

	t.Run("same type is a no-op", func(t *testing.T) {
		s := searched(t, "dogs", search.TypeAll, page(true, "A"))
		next, cmd := Reduce(s, ChangeType{Type: search.TypeAll})
		if cmd != nil || !next.same(s) {
			t.Error("re-selecting the current type must not re-run")
		}
	})

	t.Run("invalid type is ignored", func(t *testing.T) {
		s := NewState()
		next, cmd := Reduce(s, ChangeType{Type: "news"})
		if cmd != nil || next.Type != search.TypeAll {
			t.Errorf("invalid type applied: %+v", next)
		}
	})
}

func TestReduceStaleCompletions(t *testing.T) {
	s := NewState()
	s, _ = Reduce(s, EditQuery{Text: "cats"})
	s, first := Reduce(s, Submit{})
	s, _ = Reduce(s, EditQuery{Text: "dogs"})
	s, second := Reduce(s, Submit{})

	if second.Seq <= first.Seq {
		t.Fatalf("sequence must increase: %d then %d", first.Seq, second.Seq)
	}

	s, _ = Reduce(s, SearchSucceeded{Seq: second.Seq, Response: page(false, "dog")})
	stale, _ := Reduce(s, SearchSucceeded{Seq: first.Seq, Response: page(true, "cat")})
	if !stale.same(s) {
		t.Errorf("stale success changed state: %v", titles(stale))
	}

	stale, _ = Reduce(s, SearchFailed{Seq: first.Seq, Failure: &Failure{Message: "late"}})
	if stale.Err != nil {
		t.Error("stale failure recorded an error")
	}
}

func TestReduceFreshSearchSupersedesLoadMore(t *testing.T) {
	s := searched(t, "cats", search.TypeAll, page(true, "A"))
	s, more := Reduce(s, LoadMore{})
	s, fresh := Reduce(s, Submit{})

	if s.LoadingMore {
		t.Error("fresh search should clear loading more")
	}

	s, _ = Reduce(s, SearchSucceeded{Seq: fresh.Seq, Response: page(true, "X")})
	late, _ := Reduce(s, MoreSucceeded{Seq: more.Seq, Page: 2, Response: page(true, "B")})
	if !equalStrings(titles(late), []string{"X"}) || late.Page != 1 {
		t.Errorf("superseded load more was applied: %v page=%d", titles(late), late.Page)
	}
}

func TestReducePageOnlyAdvances(t *testing.T) {
	s := searched(t, "cats", search.TypeAll, page(true, "A"))
	for want := 2; want <= 5; want++ {
		var cmd *Command
		s, cmd = Reduce(s, LoadMore{})
		if cmd.Request.Page != want {
			t.Fatalf("requested page %d, want %d", cmd.Request.Page, want)
		}
		s, _ = Reduce(s, MoreSucceeded{Seq: cmd.Seq, Page: cmd.Request.Page, Response: page(true, "p")})
		if s.Page != want {
			t.Fatalf("page = %d, want %d", s.Page, want)
		}
	}
	if len(s.Items) != 5 {
		t.Errorf("expected 5 accumulated items, got %d", len(s.Items))
	}
}

func TestStateView(t *testing.T) {
	s := NewState()
	v := s.View("abc")
	if v.Items == nil {
		t.Error("view items must not be nil")
	}
	if v.ID != "abc" || v.Type != search.TypeAll || v.Page != 1 {
		t.Errorf("unexpected view %+v", v)
	}

	s.Err = &Failure{Kind: FailureUpstream, Message: "<script>"}
	v = s.View("")
	if v.Error != "<script>" || v.ErrorKind != "upstream" {
		t.Errorf("unexpected error fields %q %q", v.Error, v.ErrorKind)
	}
}

func TestReduceAbandonedCalls(t *testing.T) {
	s := NewState()
	s, _ = Reduce(s, EditQuery{Text: "cats"})
	s, cmd := Reduce(s, Submit{})
	s, _ = Reduce(s, SearchAbandoned{Seq: cmd.Seq})
	if s.Loading || s.HasSearched || s.Err != nil {
		t.Errorf("abandoned search: loading=%v has_searched=%v err=%+v", s.Loading, s.HasSearched, s.Err)
	}
	if _, cmd := Reduce(s, ChangeType{Type: search.TypeImage}); cmd != nil {
		t.Error("type change after an abandoned search should not re-run it")
	}

	s = searched(t, "cats", search.TypeAll, page(true, "A"))
	s, more := Reduce(s, LoadMore{})
	stale, _ := Reduce(s, MoreAbandoned{Seq: more.Seq - 1})
	if !stale.LoadingMore {
		t.Error("stale abandon cleared the loading flag")
	}
	s, _ = Reduce(s, MoreAbandoned{Seq: more.Seq})
	if s.LoadingMore || s.Err != nil || s.Page != 1 || !s.CanLoadMore() {
		t.Errorf("abandoned load more: %+v", s)
	}
}
