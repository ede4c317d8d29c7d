package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/shencore/shen/cmd/web/components/types"
)

// Results renders only the results region, used for live refreshes.
func Results(data types.PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		if data.Error != "" {
			h.raw(`<div class="error-banner" role="alert"`)
			h.attr("data-kind", data.ErrorKind)
			h.raw(">")
			h.text(data.Error)
			h.raw("</div>\n")
		}
		if data.Loading {
			h.raw(`<div class="loading">`)
			h.text(data.Labels.Loading)
			h.raw("</div>\n")
			return h.err
		}

		if data.Summary != "" {
			h.raw(`<p class="summary">`)
			h.text(data.Summary)
			h.raw("</p>\n")
		}
		if data.Empty() {
			h.raw(`<p class="no-results">`)
			h.text(data.Labels.NoResults)
			h.raw("</p>\n")
		}
		if len(data.Cards) > 0 {
			h.raw("<div")
			h.attr("class", data.LayoutClass)
			h.raw(">\n")
			for _, c := range data.Cards {
				h.render(card(c))
			}
			h.raw("</div>\n")
		}
		if data.LoadingMore {
			h.raw(`<div class="loading loading-more">`)
			h.text(data.Labels.Loading)
			h.raw("</div>\n")
		}
		if data.CanLoadMore {
			h.raw(`<form class="load-more" method="post" action="/more">` + "\n")
			h.raw(`<button type="submit">`)
			h.text(data.Labels.LoadMore)
			h.raw("</button>\n</form>\n")
		}
		return h.err
	})
}

// card wraps one renderer's output. The HTML was produced by html/template
// and is already escaped.
func card(c types.Card) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="card"`)
		h.attr("data-key", c.Key)
		h.raw(">")
		h.render(templ.Raw(c.HTML))
		h.raw("</div>\n")
		return h.err
	})
}
