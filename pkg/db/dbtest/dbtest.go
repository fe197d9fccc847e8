// Package dbtest opens a migrated Postgres pool for repository tests.
package dbtest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"cleanbook/pkg/config"
	"cleanbook/pkg/db"
)

// Open connects to TEST_DATABASE_URL and applies the migrations. The test is skipped
// when the variable is unset or in -short mode.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{DatabaseURL: url}
	_, err := db.Migrate("file://"+migrationsDir(), cfg)
	require.NoError(t, err, "migrate")

	pool, err := db.Open(context.Background(), cfg)
	require.NoError(t, err, "open")
	t.Cleanup(pool.Close)
	return pool
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}
