package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/shencore/shen/pkg/config"
	"github.com/shencore/shen/pkg/history"
	"github.com/shencore/shen/pkg/render"
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("214")).
	Margin(0, 0, 1, 0)

// HistoryCommand creates the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show or clear recent searches",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of searches to show",
				Value: history.DefaultLimit,
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Show totals instead of the list",
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Delete every recorded search",
			},
			&cli.StringFlag{
				Name:  "locale",
				Usage: "Locale for times (defaults to the configured locale)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("search history is disabled in %s", c.String("config"))
			}
			locale := c.String("locale")
			if locale == "" {
				locale = cfg.Locale
			}
			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer store.Close()

			switch {
			case c.Bool("clear"):
				n, err := store.Clear(ctx)
				if err != nil {
					return fmt.Errorf("clearing history: %w", err)
				}
				fmt.Printf("Removed %d searches\n", n)
				return nil
			case c.Bool("stats"):
				stats, err := store.Stats(ctx)
				if err != nil {
					return fmt.Errorf("reading history stats: %w", err)
				}
				return printHistoryStats(os.Stdout, stats, locale, c.Bool("json"))
			}

			entries, err := store.Recent(ctx, int(c.Int("limit")))
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}
			return printHistory(os.Stdout, entries, locale, c.Bool("json"))
		},
	}
}

func printHistory(w io.Writer, entries []history.Entry, locale string, asJSON bool) error {
	if asJSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, metaStyle.Render("No searches recorded yet"))
		return nil
	}

	fmt.Fprintln(w, headerStyle.Render("Recent searches"))
	for _, e := range entries {
		line := titleStyle.Render(e.Term)
		meta := fmt.Sprintf("%s, page %d, %d items", e.Type, e.Page, e.ItemCount)
		if e.TotalResults != "" {
			meta += fmt.Sprintf(" of %s", e.TotalResults)
		}
		fmt.Fprintf(w, "%-12s %s  %s\n", render.FormatTime(e.CreatedAt, locale), line, metaStyle.Render(meta))
	}
	return nil
}

func printHistoryStats(w io.Writer, stats history.Stats, locale string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintln(w, headerStyle.Render("Search history"))
	fmt.Fprintf(w, "Searches:     %d\n", stats.Searches)
	fmt.Fprintf(w, "Unique terms: %d\n", stats.UniqueTerms)
	if !stats.Last.IsZero() {
		fmt.Fprintf(w, "Last search:  %s\n", render.FormatTime(stats.Last, locale))
	}
	return nil
}
