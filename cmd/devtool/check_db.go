package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	checkDBMaxAttempts   = 30
	checkDBRetryInterval = 2 * time.Second
	checkDBPingTimeout   = 3 * time.Second
)

type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Wait until the database accepts connections"
}

func (c *CheckDBCommand) Run(args []string) error {
	PrintHeader("Checking database...")

	dbURL := databaseURL()
	var lastErr error
	for attempt := 1; attempt <= checkDBMaxAttempts; attempt++ {
		if lastErr = ping(dbURL); lastErr == nil {
			PrintSuccess("Database is ready")
			return nil
		}

		fmt.Printf("Database not ready (%d/%d): %v\n", attempt, checkDBMaxAttempts, lastErr)
		time.Sleep(checkDBRetryInterval)
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", checkDBMaxAttempts, lastErr)
}

func ping(dbURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), checkDBPingTimeout)
	defer cancel()

	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	return conn.Ping(ctx)
}
