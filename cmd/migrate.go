package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/shencore/shen/pkg/config"
	"github.com/shencore/shen/pkg/db"
	"github.com/shencore/shen/pkg/history"
)

// MigrateCommand creates the migrate command
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Run search history database migrations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "status",
				Usage: "Show migration status without applying migrations",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runMigrations(os.Stdout, c.String("config"), c.Bool("status"))
		},
	}
}

func runMigrations(w io.Writer, configPath string, statusOnly bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) && statusOnly {
		fmt.Fprintf(w, "Database does not exist, will be created on first use: %s\n", dbPath)
		return nil
	}

	conn, err := history.OpenDB(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warnf("failed to close %s: %v", dbPath, err)
		}
	}()

	manager := db.NewMigrationManager(conn)
	if statusOnly {
		return showMigrationStatus(w, manager)
	}

	n, err := manager.ApplyPendingMigrations()
	if err != nil {
		return fmt.Errorf("applying migrations to %s: %w", dbPath, err)
	}
	if n == 0 {
		fmt.Fprintln(w, "Database is up to date")
		return nil
	}
	fmt.Fprintf(w, "Applied %d migrations to %s\n", n, dbPath)
	return nil
}

func showMigrationStatus(w io.Writer, manager *db.MigrationManager) error {
	status, err := manager.GetMigrationStatus()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Applied migrations: %d\n", len(status.Applied))
	for _, m := range status.Applied {
		appliedTime := "unknown"
		if m.AppliedAt != nil {
			appliedTime = m.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "  ✓ %03d: %s (applied: %s)\n", m.Version, m.Name, appliedTime)
	}

	fmt.Fprintf(w, "Pending migrations: %d\n", len(status.Pending))
	for _, m := range status.Pending {
		fmt.Fprintf(w, "  • %03d: %s\n", m.Version, m.Name)
	}
	if len(status.Pending) == 0 {
		fmt.Fprintln(w, "  (none - database is up to date)")
	}
	return nil
}
