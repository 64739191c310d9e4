package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiment-lab/internal/config"
	"sentiment-lab/internal/pipeline"
	"sentiment-lab/internal/reporting"
	"sentiment-lab/pkg/logger"
)

func parseInputFlags(t *testing.T, args ...string) (*cobra.Command, *inputFlags) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	var in inputFlags
	in.register(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd, &in
}

func TestInputFlags_Apply(t *testing.T) {
	t.Run("files switch kind to file", func(t *testing.T) {
		cmd, in := parseInputFlags(t, "--sentiment", "fg.csv", "--trades", "trades.xlsx", "--sheet", "Trades", "--clusters", "4")
		cfg := &config.Config{Sources: config.SourcesConfig{Kind: config.SourcePostgres, TradesTable: "historical_data"}}
		cfg.Analysis.Clusters = 3

		in.apply(cmd, cfg)

		assert.Equal(t, config.SourceFile, cfg.Sources.Kind)
		assert.Equal(t, "fg.csv", cfg.Sources.SentimentPath)
		assert.Equal(t, "trades.xlsx", cfg.Sources.TradesPath)
		assert.Equal(t, "Trades", cfg.Sources.Sheet)
		assert.Equal(t, "historical_data", cfg.Sources.TradesTable, "unset flags keep config values")
		assert.Equal(t, 4, cfg.Analysis.Clusters)
	})

	t.Run("fixtures win", func(t *testing.T) {
		cmd, in := parseInputFlags(t, "--source", "clickhouse", "--fixtures")
		cfg := &config.Config{}

		in.apply(cmd, cfg)

		assert.Equal(t, config.SourceMemory, cfg.Sources.Kind)
	})

	t.Run("database flags", func(t *testing.T) {
		cmd, in := parseInputFlags(t, "--source", "postgres", "--postgres-dsn", "postgres://localhost/market", "--trades-table", "fills")
		cfg := &config.Config{}

		in.apply(cmd, cfg)

		assert.Equal(t, config.SourcePostgres, cfg.Sources.Kind)
		assert.Equal(t, "postgres://localhost/market", cfg.Sources.PostgresDSN)
		assert.Equal(t, "fills", cfg.Sources.TradesTable)
	})
}

func TestPipelineOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aliases:\n  account: [wallet]\n"), 0o600))

	cfg := &config.Config{Analysis: config.AnalysisConfig{
		Clusters: 4, Seed: 7, MaxIterations: 50, MaxLeverage: 20, AliasesFile: path,
	}}
	opts, err := pipelineOptions(cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, opts.Segmentation.Clusters)
	assert.Equal(t, int64(7), opts.Segmentation.Seed)
	assert.Equal(t, 50, opts.Segmentation.MaxIterations)
	assert.Equal(t, 20.0, opts.MaxLeverage)

	var accountAliases []string
	for _, rule := range opts.Rules.Trades {
		if rule.Canonical == "account" {
			accountAliases = rule.Aliases
		}
	}
	assert.Contains(t, accountAliases, "wallet")
}

func TestPipelineOptions_BadAliasesFile(t *testing.T) {
	cfg := &config.Config{Analysis: config.AnalysisConfig{AliasesFile: filepath.Join(t.TempDir(), "missing.yaml")}}
	_, err := pipelineOptions(cfg)
	assert.Error(t, err)
}

func TestOpenSources(t *testing.T) {
	ctx := context.Background()

	t.Run("memory loads fixtures", func(t *testing.T) {
		cfg := &config.Config{Sources: config.SourcesConfig{Kind: config.SourceMemory}}
		sentiment, trades, closeFn, err := openSources(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()

		s, err := sentiment.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 6, s.Len())
		tr, err := trades.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 24, tr.Len())
		assert.Equal(t, "memory", trades.Kind())
	})

	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{Sources: config.SourcesConfig{Kind: config.SourceFile, SentimentPath: "a.csv", TradesPath: "b.tsv"}}
		sentiment, trades, closeFn, err := openSources(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, "a.csv", sentiment.String())
		assert.Equal(t, "b.tsv", trades.String())
	})

	t.Run("unknown kind", func(t *testing.T) {
		cfg := &config.Config{Sources: config.SourcesConfig{Kind: "s3"}}
		_, _, closeFn, err := openSources(ctx, cfg)
		require.Error(t, err)
		require.NotNil(t, closeFn)
	})
}

func TestAnalysis_RunFixtures(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Sources:  config.SourcesConfig{Kind: config.SourceMemory},
		Analysis: config.AnalysisConfig{Clusters: 3, Seed: 42, MaxIterations: 300, MaxLeverage: 100},
	}

	a, err := newAnalysis(ctx, cfg, logger.Nop(), nil)
	require.NoError(t, err)
	defer a.close()

	res, err := a.run(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Normalized.Trades, 24)
	assert.Equal(t, 3, res.Clusters)
}

func TestWriteReport_Formats(t *testing.T) {
	sentiment, trades := pipeline.FixtureTables()
	res, err := pipeline.New(pipeline.DefaultOptions()).Run(context.Background(), sentiment, trades)
	require.NoError(t, err)
	report, err := reporting.Generate(res)
	require.NoError(t, err)

	tests := []struct {
		format string
		want   string
	}{
		{"text", "Performance by sentiment"},
		{"markdown", "## Performance by Sentiment"},
		{"json", `"recommendations"`},
		{"csv", "account,date,classification,total_pnl"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeReport(&buf, tt.format, report, res))
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	var buf bytes.Buffer
	require.NoError(t, writeQuality(&buf, "json", report))
	var view qualityView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	assert.Len(t, view.Quality.Tables, 2)
	assert.NotEmpty(t, view.Resolutions)
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"text", "markdown", "json", "csv"} {
		assert.True(t, validFormat(f), f)
	}
	assert.False(t, validFormat("yaml"))
}

func TestAnalyzeCommand_Fixtures(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report")
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{
		"analyze", "--fixtures", "--format", "json", "--out", out,
		"--env-file", filepath.Join(t.TempDir(), "none.env"), "--log-level", "error",
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	var decoded reporting.Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	assert.Len(t, decoded.Comparison, 2)
	assert.True(t, strings.HasPrefix(decoded.Recommendations[0], "Trend Following in Greed"))

	for _, f := range []string{reporting.ReportFile, reporting.ReportJSONFile, reporting.DailyMetricsFile} {
		_, err := os.Stat(filepath.Join(out, f))
		assert.NoError(t, err, f)
	}
}
