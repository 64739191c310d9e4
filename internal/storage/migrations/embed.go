// Package migrations creates the input tables the analysis reads from
// PostgreSQL and ClickHouse. Column names follow the exchange export headers
// so exported files can be bulk-loaded unchanged.
package migrations

import "embed"

// PostgresFS embeds all PostgreSQL migration files.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS embeds all ClickHouse migration files.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
