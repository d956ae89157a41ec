// Command schema applies the account and message DDL to the configured
// database, or lists its tables with --list.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ignite/social-api/internal/config"
	"github.com/ignite/social-api/internal/pkg/logger"
	"github.com/ignite/social-api/internal/repository/sqlstore"
)

func run(ctx context.Context, cfg config.DatabaseConfig, listOnly bool, out io.Writer) error {
	db, err := sqlstore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if !listOnly {
		if err := sqlstore.EnsureSchema(ctx, db, cfg.Driver); err != nil {
			return err
		}
		logger.Info("schema applied", "driver", cfg.Driver)
	}

	tables, err := sqlstore.ListTables(ctx, db, cfg.Driver)
	if err != nil {
		return err
	}
	for _, t := range tables {
		fmt.Fprintln(out, " ", t)
	}
	fmt.Fprintf(out, "Total: %d tables\n", len(tables))
	return nil
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	listOnly := flag.Bool("list", false, "only list existing tables")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := run(context.Background(), cfg.Database, *listOnly, os.Stdout); err != nil {
		logger.Error("schema", "error", err)
		os.Exit(1)
	}
}
