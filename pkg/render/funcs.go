package render

import (
	"html"
	"html/template"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shencore/shen/pkg/i18n"
)

// Highlight turns an API-provided HTML fragment (htmlTitle, htmlSnippet)
// into safe HTML. Only <b> emphasis survives; every other tag is unwrapped,
// script and style content is dropped and text is escaped.
func Highlight(fragment string) template.HTML {
	if !strings.ContainsAny(fragment, "<&") {
		return template.HTML(template.HTMLEscapeString(fragment))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return template.HTML(template.HTMLEscapeString(PlainText(fragment)))
	}

	var b strings.Builder
	writeHighlighted(&b, doc.Find("body"))
	return template.HTML(b.String())
}

func writeHighlighted(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		switch goquery.NodeName(node) {
		case "#text":
			b.WriteString(html.EscapeString(node.Text()))
		case "b", "strong":
			b.WriteString("<b>")
			writeHighlighted(b, node)
			b.WriteString("</b>")
		case "br":
			b.WriteString(" ")
		case "script", "style", "#comment":
		default:
			writeHighlighted(b, node)
		}
	})
}

// PlainText strips markup and entities from an HTML fragment and collapses
// whitespace, for terminal output.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	body := doc.Find("body")
	body.Find("script, style").Remove()
	return strings.Join(strings.Fields(body.Text()), " ")
}

// Truncate shortens s to at most n runes, ending with "..." when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// Host returns the host part of a URL, or the input when it does not parse.
func Host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// FormatTime formats t relative to now in the language of locale. Times
// older than a week are shown as a date.
func FormatTime(t time.Time, locale string) string {
	return formatTimeAt(t, time.Now(), locale)
}

func formatTimeAt(t, now time.Time, locale string) string {
	p := i18n.Printer(locale)
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return p.Sprintf(i18n.JustNow)
	case diff < time.Hour:
		return p.Sprintf(i18n.MinutesAgo, int(diff.Minutes()))
	case diff < 24*time.Hour:
		return p.Sprintf(i18n.HoursAgo, int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return p.Sprintf(i18n.DaysAgo, int(diff.Hours()/24))
	default:
		return t.Format(p.Sprintf(i18n.DateLayout))
	}
}

// GetTemplateFuncs returns the functions available to result card templates.
func GetTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"highlight": Highlight,
		"plainText": PlainText,
		"truncate":  Truncate,
		"host":      Host,
		"title":     cases.Title(language.English).String,
		"default": func(def, val string) string {
			if strings.TrimSpace(val) == "" {
				return def
			}
			return val
		},
	}
}
