// Command sentimentlab relates Fear & Greed sentiment to trader performance.
//
// Subcommands:
//   - analyze: run the full analysis once and print or write the report
//   - quality: profile the raw tables and print data quality checks
//   - serve:   re-run the analysis on an interval and serve the latest report over HTTP
//   - migrate: create the input tables in PostgreSQL or ClickHouse
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Global flags
var (
	envFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "sentimentlab",
	Short: "Trader performance vs market sentiment",
	Long: `sentimentlab joins a daily Fear & Greed index with a trade log, compares
trader outcomes across sentiment regimes, clusters traders into behavioral
segments and derives strategy recommendations.

Inputs are read from CSV/TSV/XLSX files, PostgreSQL or ClickHouse tables, or
the built-in fixture dataset (--fixtures).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional .env file with configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug|info|warn|error)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
