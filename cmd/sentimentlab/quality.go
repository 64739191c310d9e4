package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sentiment-lab/internal/reporting"
)

var (
	qualityInput  inputFlags
	qualityFormat string
)

var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Profile the input tables and check data sufficiency",
	Long: `Print per-table row and column counts, missing cells, duplicate rows,
column resolution and the sufficiency checks for the configured inputs.

Examples:
  sentimentlab quality --fixtures
  sentimentlab quality --sentiment fear_greed_index.csv --trades historical_data.csv --format json`,
	RunE: runQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)

	qualityInput.register(qualityCmd)
	qualityCmd.Flags().StringVar(&qualityFormat, "format", "text", "Output format: text, json")
}

// qualityView is the JSON shape printed by quality.
type qualityView struct {
	TimeColumn  string                       `json:"time_column"`
	TimeUnit    string                       `json:"time_unit"`
	Quality     reporting.DataQualitySection `json:"data_quality"`
	Resolutions []reporting.ResolutionRow    `json:"resolutions"`
	Warnings    []reporting.WarningRow       `json:"warnings"`
}

func runQuality(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format := strings.ToLower(qualityFormat)
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", qualityFormat)
	}

	cfg, err := loadConfig(cmd, &qualityInput)
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

	return writeQuality(cmd.OutOrStdout(), format, report)
}

func writeQuality(w io.Writer, format string, report *reporting.Report) error {
	if format == "text" {
		_, err := io.WriteString(w, reporting.RenderQualityText(report))
		return err
	}

	view := qualityView{
		TimeColumn:  report.TimeColumn,
		TimeUnit:    report.TimeUnit,
		Quality:     report.DataQuality,
		Resolutions: report.Resolutions,
		Warnings:    report.Warnings,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
