package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/Mivy_Go/internal/database"
	"github.com/osse101/Mivy_Go/migrations"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, create)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, create")
	}
	subcmd := args[0]

	// create only writes a file, so it goes through the goose CLI
	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}
		if err := validateMigrationName(args[1]); err != nil {
			return err
		}
		return runCommandVerbose("go", "run", "github.com/pressly/goose/v3/cmd/goose",
			"-dir", "migrations", "create", args[1], "sql")
	}

	command := database.MigrationCommand(subcmd)
	switch command {
	case database.MigrateUp, database.MigrateDown, database.MigrateStatus:
	default:
		return fmt.Errorf("unknown subcommand %q", subcmd)
	}

	PrintHeader(fmt.Sprintf("Running migrations: %s", subcmd))

	pool, err := database.NewPool(databaseURL(), 2, time.Minute, 5*time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(context.Background(), pool, migrations.FS, command); err != nil {
		return err
	}

	PrintSuccess("Migrations %s complete", subcmd)
	return nil
}
