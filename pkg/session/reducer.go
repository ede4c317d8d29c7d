package session

import "github.com/shencore/shen/pkg/search"

// Reduce applies ev to s and returns the next state plus the outbound call
// the transition requires, if any. Reduce is pure: it performs no I/O and
// never modifies s.
//
// Completion events carry the sequence number of the command they answer.
// A completion whose sequence is not the latest issued for its category is
// stale and leaves the state untouched.
func Reduce(s State, ev Event) (State, *Command) {
	switch ev := ev.(type) {
	case EditQuery:
		s.Query = ev.Text
		return s, nil

	case Submit:
		return freshSearch(s)

	case ChangeType:
		if !ev.Type.Valid() || ev.Type == s.Type {
			return s, nil
		}
		s.Type = ev.Type
		if s.HasSearched && s.trimmedQuery() != "" {
			return freshSearch(s)
		}
		return s, nil

	case LoadMore:
		if !s.CanLoadMore() {
			return s, nil
		}
		s.moreSeq++
		s.LoadingMore = true
		s.Err = nil
		return s, &Command{
			Kind: CommandMore,
			Seq:  s.moreSeq,
			Request: search.Request{
				Term: s.Term,
				Type: s.Type,
				Page: s.Page + 1,
			},
		}

	case SearchSucceeded:
		if ev.Seq != s.searchSeq || !s.Loading {
			return s, nil
		}
		s.Loading = false
		s.Items = cloneItems(itemsOf(ev.Response))
		s.Info = ev.Response.SearchInfo()
		s.HasNextPage = ev.Response.HasNextPage()
		return s, nil

	case SearchFailed:
		if ev.Seq != s.searchSeq || !s.Loading {
			return s, nil
		}
		s.Loading = false
		s.Err = ev.Failure
		return s, nil

	case MoreSucceeded:
		if ev.Seq != s.moreSeq || !s.LoadingMore {
			return s, nil
		}
		s.LoadingMore = false
		s.Items = appendItems(s.Items, itemsOf(ev.Response))
		s.Page = ev.Page
		s.Info = ev.Response.SearchInfo()
		s.HasNextPage = ev.Response.HasNextPage()
		return s, nil

	case MoreFailed:
		if ev.Seq != s.moreSeq || !s.LoadingMore {
			return s, nil
		}
		s.LoadingMore = false
		s.Err = ev.Failure
		return s, nil

	case SearchAbandoned:
		if ev.Seq != s.searchSeq || !s.Loading {
			return s, nil
		}
		// Nothing was shown for the term, so a later type change must not
		// re-run it.
		s.Loading = false
		s.HasSearched = false
		return s, nil

	case MoreAbandoned:
		if ev.Seq != s.moreSeq || !s.LoadingMore {
			return s, nil
		}
		s.LoadingMore = false
		return s, nil
	}

	return s, nil
}

// freshSearch resets pagination and issues page 1 for the current query and
// type. An in-flight load more is superseded.
func freshSearch(s State) (State, *Command) {
	term := s.trimmedQuery()
	if term == "" {
		return s, nil
	}

	s.searchSeq++
	if s.LoadingMore {
		s.moreSeq++
		s.LoadingMore = false
	}
	s.Err = nil
	s.HasSearched = true
	s.Loading = true
	s.Term = term
	s.Page = 1
	s.Items = nil
	s.Info = nil
	s.HasNextPage = false

	return s, &Command{
		Kind: CommandSearch,
		Seq:  s.searchSeq,
		Request: search.Request{
			Term: term,
			Type: s.Type,
			Page: 1,
		},
	}
}

func itemsOf(r *search.Response) []search.Item {
	if r == nil {
		return nil
	}
	return r.Items
}

func cloneItems(items []search.Item) []search.Item {
	if len(items) == 0 {
		return nil
	}
	out := make([]search.Item, len(items))
	copy(out, items)
	return out
}

// appendItems concatenates into a fresh slice so earlier states keep their
// own backing array.
func appendItems(existing, more []search.Item) []search.Item {
	if len(more) == 0 {
		return existing
	}
	out := make([]search.Item, 0, len(existing)+len(more))
	out = append(out, existing...)
	return append(out, more...)
}
