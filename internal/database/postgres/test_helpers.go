package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/Mivy_Go/internal/database"
	"github.com/osse101/Mivy_Go/migrations"
)

var (
	testDBConnString  string
	testPool          *pgxpool.Pool
	migrationsApplied bool
	migrationsMux     sync.Mutex
)

// startTestContainer boots a throwaway postgres. A missing Docker daemon
// makes testcontainers panic, which is turned into an empty conn string.
func startTestContainer(ctx context.Context) (connStr string, terminate func()) {
	terminate = func() {}
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic starting postgres container: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", terminate
	}

	connStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", terminate
	}
	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

// requirePool skips the test unless a migrated database is available
func requirePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	ensureMigrations(t)
	return testPool
}

// ensureMigrations applies migrations once for all tests in the package
func ensureMigrations(t *testing.T) {
	migrationsMux.Lock()
	defer migrationsMux.Unlock()

	if migrationsApplied {
		return
	}
	if err := database.Migrate(context.Background(), testPool, migrations.FS, database.MigrateUp); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	migrationsApplied = true
}

// truncateAll empties every table between tests
func truncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE post_comments, post_likes, posts, memberships, tiers, creators, linked_accounts, users`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
