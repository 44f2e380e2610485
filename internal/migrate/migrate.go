package migrate

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tiffinbox/internal/xpkg/config"
	"tiffinbox/internal/xpkg/db"
	"tiffinbox/internal/xpkg/logger"
	"tiffinbox/internal/xpkg/xerrors"
)

// Execute applies the plain-SQL migration scripts in lexical order. Each
// file runs in its own transaction and is recorded in schema_migrations so
// reruns are no-ops.
func Execute(ctx context.Context, mylog logger.Logger, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config-path", "config.yaml", "path for config yaml")
	dir := fs.String("dir", "migrations", "directory with .sql migration scripts")

	if err := fs.Parse(args); err != nil {
		return xerrors.ErrParseCmd
	}
	if *showHelp {
		fs.Usage()
		return xerrors.ErrHelp
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	database, err := db.Start(ctx, cfg.DB, mylog)
	if err != nil {
		mylog.Action("db_connection_failed").Error("Failed to connect to database", err)
		return err
	}
	defer database.Close()

	return Run(ctx, database, *dir, mylog)
}

func Run(ctx context.Context, database *db.DB, dir string, mylog logger.Logger) error {
	mylog = mylog.Action("migrate")

	_, err := database.Pool().Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		done, err := apply(ctx, database, dir, name)
		if err != nil {
			mylog.Error("Migration failed", err, "file", name)
			return err
		}
		if done {
			mylog.Info("Applied migration", "file", name)
			applied++
		}
	}

	mylog.Info("Migrations complete", "applied", applied, "total", len(names))
	return nil
}

func apply(ctx context.Context, database *db.DB, dir, name string) (bool, error) {
	tx, err := database.Pool().Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// ON CONFLICT DO NOTHING makes concurrent runners safe: only the runner
	// that wins the insert executes the script.
	cmdTag, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING`, name)
	if err != nil {
		return false, err
	}
	if cmdTag.RowsAffected() == 0 {
		return false, nil // already applied
	}

	script, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return false, err
	}

	if _, err := tx.Exec(ctx, string(script)); err != nil {
		return false, fmt.Errorf("failed to execute %s: %w", name, err)
	}

	return true, tx.Commit(ctx)
}
