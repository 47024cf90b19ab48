// Command migrate creates (or drops and recreates) the contacts schema
// without starting the server. Useful for provisioning a fresh database
// before the first deploy.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thorsignia/backend/internal/config"
	"github.com/thorsignia/backend/internal/logging"
	"github.com/thorsignia/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   create the contacts table if it does not exist
  reset       drop the contacts table and recreate it`)
	os.Exit(1)
}

func main() {
	logger := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "" && cmd != "reset" {
		usage()
	}

	ctx := context.Background()

	if cfg.Database.URL != "" {
		pool, err := repository.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			logging.Fatal("connect failed", "error", err)
		}
		defer pool.Close()

		repo := repository.NewPgContactRepository(pool)
		if cmd == "reset" {
			if err := repo.Drop(ctx); err != nil {
				logging.Fatal("drop failed", "error", err)
			}
		}
		if err := repo.Migrate(ctx); err != nil {
			logging.Fatal("migration failed", "error", err)
		}
		logger.Info("postgres schema ready")
		return
	}

	if err := os.MkdirAll(cfg.Backup.DataDir, 0o755); err != nil {
		logging.Fatal("failed to create data directory", "error", err, "dir", cfg.Backup.DataDir)
	}
	repo, err := repository.OpenSQLite(cfg.Database.SQLitePath)
	if err != nil {
		logging.Fatal("failed to open sqlite database", "error", err, "path", cfg.Database.SQLitePath)
	}
	defer repo.Close()

	if cmd == "reset" {
		if err := repo.Drop(ctx); err != nil {
			logging.Fatal("drop failed", "error", err)
		}
	}
	if err := repo.Migrate(ctx); err != nil {
		logging.Fatal("migration failed", "error", err)
	}
	logger.Info("sqlite schema ready", "path", cfg.Database.SQLitePath)
}
