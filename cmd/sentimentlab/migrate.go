package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentiment-lab/internal/config"
	chstore "sentiment-lab/internal/storage/clickhouse"
	"sentiment-lab/internal/storage/migrations"
	pgstore "sentiment-lab/internal/storage/postgres"
)

var migrateInput inputFlags

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the input tables in PostgreSQL or ClickHouse",
	Long: `Create the fear_greed_index and historical_data tables in the configured
database. Statements are idempotent. Load the exported files afterwards, e.g.
with psql \copy or clickhouse-client INSERT ... FORMAT CSVWithNames.

Examples:
  sentimentlab migrate --source postgres --postgres-dsn postgres://localhost/market
  sentimentlab migrate --source clickhouse --clickhouse-dsn clickhouse://localhost:9000/market`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateInput.register(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, &migrateInput)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	switch cfg.Sources.Kind {
	case config.SourcePostgres:
		pool, err := pgstore.NewPool(ctx, cfg.Sources.PostgresDSN)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer pool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return err
		}

	case config.SourceClickHouse:
		conn, err := chstore.NewConn(ctx, cfg.Sources.ClickHouseDSN)
		if err != nil {
			return fmt.Errorf("connect to clickhouse: %w", err)
		}
		defer conn.Close()
		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			return err
		}

	default:
		return fmt.Errorf("migrate needs a database source, got %q", cfg.Sources.Kind)
	}

	log.Infow("migrations applied", "source", cfg.Sources.Kind)
	return nil
}
