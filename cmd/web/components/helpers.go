package components

import (
	"github.com/shencore/shen/cmd/web/components/types"
	"github.com/shencore/shen/pkg/i18n"
	"github.com/shencore/shen/pkg/render"
	"github.com/shencore/shen/pkg/search"
	"github.com/shencore/shen/pkg/session"
	"github.com/shencore/shen/pkg/version"
)

// BuildPageData turns a session snapshot into everything the page and the
// results fragment need. Labels are resolved with the locale's printer.
func BuildPageData(id string, s session.State, locale string, svc *render.Service) types.PageData {
	p := i18n.Printer(locale)

	data := types.PageData{
		Title:     "SHEN Core",
		Lang:      i18n.Lang(locale),
		Dir:       i18n.Direction(locale),
		SessionID: id,
		Version:   version.APIVersion(),
		Query:     s.Query,
		Type:      s.Type,
		Labels: types.Labels{
			Placeholder:  p.Sprintf(i18n.Placeholder),
			SearchButton: p.Sprintf(i18n.SearchButton),
			LoadMore:     p.Sprintf(i18n.LoadMore),
			Loading:      p.Sprintf(i18n.Loading),
			NoResults:    p.Sprintf(i18n.NoResults),
			SearchFailed: p.Sprintf(i18n.SearchFailed),
		},
		LayoutClass:  render.LayoutClass(s.Type),
		HasSearched:  s.HasSearched,
		Loading:      s.Loading,
		LoadingMore:  s.LoadingMore,
		CanLoadMore:  s.CanLoadMore(),
		StateVersion: s.Version,
	}
	if s.Term != "" {
		data.Title = s.Term + " - SHEN Core"
	}

	labels := map[search.Type]string{
		search.TypeAll:   p.Sprintf(i18n.FilterAll),
		search.TypeImage: p.Sprintf(i18n.FilterImage),
		search.TypeVideo: p.Sprintf(i18n.FilterVideo),
	}
	for _, t := range search.Types {
		data.Filters = append(data.Filters, types.Filter{Type: t, Label: labels[t], Active: t == s.Type})
	}

	if s.Err != nil {
		data.Error = s.Err.Message
		data.ErrorKind = s.Err.Kind.String()
	}

	if svc != nil && len(s.Items) > 0 {
		for _, c := range svc.Cards(s.Type, s.Items) {
			data.Cards = append(data.Cards, types.Card{Key: c.Key, HTML: c.HTML})
		}
	}

	if s.Info != nil && len(s.Items) > 0 && s.Info.FormattedTotalResults != "" {
		data.Summary = p.Sprintf(i18n.ResultsSummary, s.Info.FormattedTotalResults, s.Info.FormattedSearchTime)
	}

	return data
}
