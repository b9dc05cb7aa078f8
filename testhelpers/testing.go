// Package testhelpers starts disposable infrastructure for integration tests.
package testhelpers

import (
	"context"
	"testing"
	"time"

	"fleethvac/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// TestDB holds a migrated PostgreSQL container and a pool connected to it
type TestDB struct {
	Pool *pgxpool.Pool
	DSN  string
}

// NewTestDB starts a fresh PostgreSQL container, applies the schema and registers cleanup
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("fleethvac_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(dsn, zap.NewNop()), "failed to migrate test database")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return &TestDB{Pool: pool, DSN: dsn}
}

// SeedTenant inserts a tenant row unless it already exists
func (db *TestDB) SeedTenant(t *testing.T, id, name string) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO tenants (id, name, language) VALUES ($1, $2, 'sv') ON CONFLICT (id) DO NOTHING`, id, name)
	require.NoError(t, err, "failed to seed tenant %s", id)
}
