package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"cleanbook/pkg/config"
)

func TestRuntimeConnString_PrefersDatabaseURL(t *testing.T) {
	cfg := config.Config{
		DatabaseURL: "postgres://pooler:6543/app?pgbouncer=true",
		DB:          config.DBConfig{Host: "h", Port: "1", Name: "n", User: "u", Password: "p"},
	}
	assert.Equal(t, cfg.DatabaseURL, runtimeConnString(cfg))

	cfg.DatabaseURL = "  "
	assert.Equal(t, "postgres://u:p@h:1/n?sslmode=disable", runtimeConnString(cfg))
}

func TestMigrationConnString_PrefersDirectURL(t *testing.T) {
	cfg := config.Config{DatabaseURL: "postgres://pooler/app", DirectURL: "postgres://direct/app"}
	assert.Equal(t, "postgres://direct/app", migrationConnString(cfg))

	cfg.DirectURL = ""
	assert.Equal(t, "postgres://pooler/app", migrationConnString(cfg))
}

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	badUUID := fmt.Errorf("update: %w", &pgconn.PgError{Code: "22P02"})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(badUUID))
	assert.True(t, IsInvalidInput(badUUID))
	assert.False(t, IsInvalidInput(errors.New("plain")))
}
