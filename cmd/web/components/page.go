package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/shencore/shen/cmd/web/components/types"
)

// Page renders the full search page.
func Page(data types.PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<!DOCTYPE html>\n<html")
		h.attr("lang", data.Lang)
		h.attr("dir", data.Dir)
		h.raw(">\n<head>\n")
		h.raw(`<meta charset="utf-8">` + "\n")
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
		h.raw("<title>")
		h.text(data.Title)
		h.raw("</title>\n")
		h.raw(`<link rel="stylesheet" href="/static/app.css">` + "\n")
		h.raw("</head>\n<body")
		h.attr("data-session", data.SessionID)
		h.raw(` data-version="`)
		h.number(data.StateVersion)
		h.raw(`">` + "\n")

		h.raw(`<header class="search-header">` + "\n")
		h.render(searchForm(data))
		h.raw("</header>\n")

		h.raw(`<main id="results" aria-live="polite">` + "\n")
		h.render(Results(data))
		h.raw("</main>\n")

		h.render(footer(data.Version))
		h.raw(`<script src="/static/app.js" defer></script>` + "\n")
		h.raw("</body>\n</html>\n")
		return h.err
	})
}

// searchForm posts the search box to /search. The filter buttons submit the
// same form to /type so a type change carries the text in the box.
func searchForm(data types.PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<form class="search-form" method="post" action="/search">` + "\n")
		h.raw(`<div class="search-row">` + "\n")
		h.raw(`<input type="search" name="q"`)
		h.attr("value", data.Query)
		h.attr("placeholder", data.Labels.Placeholder)
		h.raw(" autocomplete=\"off\" autofocus>\n")
		h.raw(`<button type="submit" name="type"`)
		h.attr("value", string(data.Type))
		h.raw(">")
		h.text(data.Labels.SearchButton)
		h.raw("</button>\n</div>\n")
		h.render(filters(data.Filters))
		h.raw("</form>\n")
		return h.err
	})
}

func filters(fs []types.Filter) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="filters">` + "\n")
		for _, f := range fs {
			h.raw(`<button type="submit" formaction="/type" name="type"`)
			h.attr("value", string(f.Type))
			if f.Active {
				h.raw(` class="active" aria-pressed="true">`)
			} else {
				h.raw(` aria-pressed="false">`)
			}
			h.text(f.Label)
			h.raw("</button>\n")
		}
		h.raw("</div>\n")
		return h.err
	})
}

func footer(version string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<footer class="site-footer">Exclusive ☬SHΞN™ made <span class="version">v`)
		h.text(version)
		h.raw("</span></footer>\n")
		return h.err
	})
}
