package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// MigrationCommand selects the goose operation run by Migrate
type MigrationCommand string

const (
	MigrateUp     MigrationCommand = "up"
	MigrateDown   MigrationCommand = "down"
	MigrateStatus MigrationCommand = "status"
)

// Migrate runs the goose migrations found at the root of migrationsFS
// against the pool. Migrations use a database/sql handle bridged from pgx.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrationsFS fs.FS, cmd MigrationCommand) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(MigrationDialect); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRunMigrations, err)
	}

	var err error
	switch cmd {
	case MigrateUp:
		err = goose.UpContext(ctx, db, ".")
	case MigrateDown:
		err = goose.DownContext(ctx, db, ".")
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown migration command %q", cmd)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRunMigrations, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err == nil {
		slog.Default().Info(LogMsgMigrationsApplied, "command", string(cmd), "version", version)
	}
	return nil
}
