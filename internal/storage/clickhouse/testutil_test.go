package clickhouse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"sentiment-lab/internal/storage/migrations"
)

// setupTestDB creates a ClickHouse container and returns a connection.
// Returns a cleanup function that must be called when done.
func setupTestDB(t *testing.T) (*Conn, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start ClickHouse container
	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60*time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_DB":       "test",
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	// Get native port (9000)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	dsn := fmt.Sprintf("clickhouse://%s:%s/test", host, port.Port())

	// Connect to ClickHouse
	conn, err := NewConn(ctx, dsn)
	require.NoError(t, err)

	seedTables(t, conn)

	cleanup := func() {
		conn.Close()
		_ = container.Terminate(ctx)
	}

	return conn, cleanup
}

// seedTables creates the input tables from the embedded migrations and
// inserts a few rows.
func seedTables(t *testing.T, conn *Conn) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, migrations.RunClickhouseMigrations(ctx, conn), "failed to run migrations")

	statements := []string{
		`INSERT INTO fear_greed_index VALUES
			(1704067200, 25, 'Fear', '2024-01-01'),
			(1704153600, 70, 'Greed', '2024-01-02'),
			(1704240000, 50, NULL, '2024-01-03')`,
		"INSERT INTO historical_data (`Account`, `Closed PnL`, `Timestamp`, `Leverage`) VALUES " +
			"('0xabc', -5, 1704103200000, 3), " +
			"('0xdef', 10, 1704189600000, NULL)",
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(ctx, stmt), "failed to seed: %s", stmt)
	}
}
