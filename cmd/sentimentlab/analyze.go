package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sentiment-lab/internal/pipeline"
	"sentiment-lab/internal/reporting"
)

var (
	analyzeInput  inputFlags
	analyzeFormat string
	analyzeOutDir string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the sentiment analysis once and print the report",
	Long: `Load the sentiment and trade tables, normalize and join them, compare
performance across sentiment classes, segment traders and print the report.

Examples:
  sentimentlab analyze --fixtures
  sentimentlab analyze --sentiment fear_greed_index.csv --trades historical_data.csv
  sentimentlab analyze --trades trades.xlsx --sentiment fg.csv --format json
  sentimentlab analyze --source postgres --postgres-dsn postgres://localhost/market --out reports/`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeInput.register(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Output format: text, markdown, json, csv")
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out", "", "Also write the report bundle (Markdown, JSON, CSVs) to this directory")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format := strings.ToLower(analyzeFormat)
	if !validFormat(format) {
		return fmt.Errorf("unknown format %q (want text, markdown, json or csv)", analyzeFormat)
	}

	cfg, err := loadConfig(cmd, &analyzeInput)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := newAnalysis(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.run(ctx)
	if err != nil {
		return err
	}
	report, err := reporting.Generate(res)
	if err != nil {
		return err
	}

	if analyzeOutDir != "" {
		if err := reporting.WriteFiles(analyzeOutDir, report, res.Daily); err != nil {
			return fmt.Errorf("write report files: %w", err)
		}
		log.Infow("report written", "dir", analyzeOutDir, "run_id", report.RunID)
	}

	return writeReport(cmd.OutOrStdout(), format, report, res)
}

func validFormat(format string) bool {
	switch format {
	case "text", "markdown", "json", "csv":
		return true
	}
	return false
}

// writeReport renders report in format. csv emits the per trader/day metrics.
func writeReport(w io.Writer, format string, report *reporting.Report, res *pipeline.Result) error {
	var out string
	switch format {
	case "markdown":
		out = reporting.RenderMarkdown(report)
	case "json":
		js, err := reporting.RenderJSON(report)
		if err != nil {
			return err
		}
		out = string(js) + "\n"
	case "csv":
		csv, err := reporting.RenderDailyCSV(res.Daily)
		if err != nil {
			return err
		}
		out = csv
	default:
		out = reporting.RenderText(report)
	}
	_, err := io.WriteString(w, out)
	return err
}
