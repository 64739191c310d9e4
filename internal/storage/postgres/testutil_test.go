package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"sentiment-lab/internal/storage/migrations"
)

// setupTestDB creates a PostgreSQL container for testing and seeds the input tables.
// Returns a cleanup function that must be called after tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	seedTables(t, ctx, pool)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// seedTables creates the input tables from the embedded migrations and
// inserts a few rows.
func seedTables(t *testing.T, ctx context.Context, pool *Pool) {
	t.Helper()

	require.NoError(t, migrations.RunPostgresMigrations(ctx, pool), "failed to run migrations")

	statements := []string{
		`INSERT INTO fear_greed_index VALUES
			(1517463000, 30, 'Fear', '2018-02-01'),
			(1517549400, 15, 'Extreme Fear', '2018-02-02'),
			(NULL, NULL, NULL, '2018-02-03')`,
		`INSERT INTO historical_data ("Account", "Coin", "Execution Price", "Size USD", "Timestamp IST", "Closed PnL", "Timestamp", "Leverage") VALUES
			('0xabc', 'BTC', 97000.5, 1200.25, '02-12-2024 22:50', 15.5, 1733160000000, 3),
			('0xdef', 'ETH', 3600, 500, '03-12-2024 10:00', -2.25, 1733200200000, NULL)`,
	}
	for _, stmt := range statements {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err, "failed to seed: %s", stmt)
	}
}
