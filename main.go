package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/shencore/shen/cmd"
	"github.com/shencore/shen/pkg/config"
	"github.com/shencore/shen/pkg/log"
)

var logger = log.ForService("main")

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "shen",
		Usage: "A small search front-end for the Google Custom Search API",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringSliceFlag{
				Name:  "debug-service",
				Usage: "Enable debug logging for one service (search, session, web, api, history, ...)",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Write logs as JSON lines",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: getDefaultConfigPathOrExit(),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			log.SetGlobalDebug(c.Bool("debug"))
			for _, name := range c.StringSlice("debug-service") {
				log.EnableDebugFor(strings.TrimSpace(name))
			}
			log.SetJSON(c.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.SearchCommand(),
			cmd.WebCommand(),
			cmd.HistoryCommand(),
			cmd.MigrateCommand(),
			cmd.VersionCommand(),
		},
	}
}

func getDefaultConfigPathOrExit() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get default config path: %v\n", err)
		os.Exit(1)
	}
	return path
}
