package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/shencore/shen/pkg/api"
	"github.com/shencore/shen/pkg/i18n"
	"github.com/shencore/shen/pkg/render"
	"github.com/shencore/shen/pkg/search"
	"github.com/shencore/shen/pkg/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32")).
			Margin(0, 0, 1, 0)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

const snippetWidth = 200

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the web from the terminal",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "Result type: all, image or video",
				Value: "all",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "First page to fetch",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "more",
				Usage: "Number of further pages to append",
				Value: 0,
			},
			&cli.StringFlag{
				Name:  "locale",
				Usage: "Locale for messages (defaults to the configured locale)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return fmt.Errorf("a search query is required")
			}
			t, err := search.ParseType(c.String("type"))
			if err != nil {
				return err
			}
			page := int(c.Int("page"))
			if page < 1 || page > search.MaxPage {
				return fmt.Errorf("page must be between 1 and %d", search.MaxPage)
			}
			more := int(c.Int("more"))
			if more < 0 {
				return fmt.Errorf("more must not be negative")
			}
			return runSearch(ctx, searchOptions{
				configPath: c.String("config"),
				query:      query,
				typ:        t,
				page:       page,
				more:       more,
				locale:     c.String("locale"),
				json:       c.Bool("json"),
			})
		},
	}
}

type searchOptions struct {
	configPath string
	query      string
	typ        search.Type
	page       int
	more       int
	locale     string
	json       bool
}

// searchResult is what a terminal search produced, whichever path ran it.
type searchResult struct {
	Items       []search.Item
	Page        int
	Info        *search.SearchInformation
	HasNextPage bool
	Err         string
}

func runSearch(ctx context.Context, opts searchOptions) error {
	cfg, err := loadSearchConfig(opts.configPath)
	if err != nil {
		return err
	}
	locale := opts.locale
	if locale == "" {
		locale = cfg.Locale
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	exec := withHistory(newSearchClient(cfg), store)

	var res searchResult
	if opts.page == 1 {
		res = sessionSearch(ctx, exec, locale, opts)
	} else {
		res = pagedSearch(ctx, exec, locale, opts)
	}

	if opts.json {
		if err := printSearchJSON(os.Stdout, opts, res); err != nil {
			return err
		}
	} else {
		printSearchText(os.Stdout, locale, opts, res)
	}
	if res.Err != "" {
		return cli.Exit("", 1)
	}
	return nil
}

// sessionSearch drives a session the way the browser does: a fresh search
// followed by load more until the requested number of pages is appended.
func sessionSearch(ctx context.Context, exec search.Executor, locale string, opts searchOptions) searchResult {
	c := session.NewController(exec, session.WithLocale(locale))
	defer c.Close()

	c.SetQuery(opts.query)
	c.SetType(ctx, opts.typ)
	s := c.Search(ctx)
	for i := 0; i < opts.more && s.CanLoadMore(); i++ {
		s = c.LoadMore(ctx)
		if s.Err != nil {
			break
		}
	}

	res := searchResult{Items: s.Items, Page: s.Page, Info: s.Info, HasNextPage: s.HasNextPage}
	if s.Err != nil {
		res.Err = s.Err.Message
	}
	return res
}

// pagedSearch fetches pages starting past the first one. Pages are appended
// in order and fetching stops at the first failure, the last page the
// upstream signals, or MaxPage.
func pagedSearch(ctx context.Context, exec search.Executor, locale string, opts searchOptions) searchResult {
	res := searchResult{Page: opts.page - 1}
	last := min(opts.page+opts.more, search.MaxPage)
	for p := opts.page; p <= last; p++ {
		resp, err := exec.Execute(ctx, search.Request{Term: opts.query, Type: opts.typ, Page: p})
		if err != nil {
			res.Err = failureMessage(err, locale)
			break
		}
		res.Items = append(res.Items, resp.Items...)
		res.Page = p
		res.HasNextPage = resp.HasNextPage()
		if info := resp.SearchInfo(); info != nil {
			res.Info = info
		}
		if !res.HasNextPage {
			break
		}
	}
	return res
}

// failureMessage keeps upstream messages and replaces anything else with the
// localized connection error.
func failureMessage(err error, locale string) string {
	var apiErr *search.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	logger.Debugf("search failed: %v", err)
	return i18n.Printer(locale).Sprintf(i18n.ConnectionError)
}

func printSearchJSON(w io.Writer, opts searchOptions, res searchResult) error {
	if res.Err != "" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(api.ErrorResponse{Error: "Search failed", Message: res.Err})
	}
	items := res.Items
	if items == nil {
		items = []search.Item{}
	}
	out := api.SearchResponse{
		Query:             opts.query,
		Type:              opts.typ,
		Page:              res.Page,
		Items:             items,
		Count:             len(items),
		SearchInformation: res.Info,
		HasNextPage:       res.HasNextPage,
	}
	if out.HasNextPage {
		out.NextPage = res.Page + 1
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printSearchText(w io.Writer, locale string, opts searchOptions, res searchResult) {
	p := i18n.Printer(locale)

	if res.Err != "" {
		fmt.Fprintln(w, errorStyle.Render(p.Sprintf(i18n.SearchFailed)+": "+res.Err))
		return
	}
	if len(res.Items) == 0 {
		fmt.Fprintln(w, metaStyle.Render(p.Sprintf(i18n.NoResults)))
		return
	}

	if res.Info != nil && res.Info.FormattedTotalResults != "" {
		fmt.Fprintln(w, summaryStyle.Render(p.Sprintf(i18n.ResultsSummary, res.Info.FormattedTotalResults, res.Info.FormattedSearchTime)))
	}

	for i, item := range res.Items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%d. %s\n", i+1, titleStyle.Render(itemTitle(item)))
		switch opts.typ {
		case search.TypeImage:
			fmt.Fprintln(w, "   "+urlStyle.Render(item.Link))
			if page := item.ContextLink(); page != "" && page != item.Link {
				fmt.Fprintln(w, "   "+metaStyle.Render(page))
			}
		default:
			fmt.Fprintln(w, "   "+urlStyle.Render(item.Link))
			if snippet := itemSnippet(item); snippet != "" {
				fmt.Fprintln(w, "   "+render.Truncate(snippet, snippetWidth))
			}
		}
	}

	footer := fmt.Sprintf("%d results, page %d", len(res.Items), res.Page)
	if res.HasNextPage {
		footer += fmt.Sprintf(" (next: --page %d)", res.Page+1)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, metaStyle.Render(footer))
}

func itemTitle(item search.Item) string {
	if item.HTMLTitle != "" {
		return render.PlainText(item.HTMLTitle)
	}
	return item.Title
}

func itemSnippet(item search.Item) string {
	if item.HTMLSnippet != "" {
		return render.PlainText(item.HTMLSnippet)
	}
	return strings.TrimSpace(item.Snippet)
}
