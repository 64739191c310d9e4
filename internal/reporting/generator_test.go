package reporting

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sentiment-lab/internal/pipeline"
)

func runFixtures(t *testing.T) *pipeline.Result {
	t.Helper()

	fixedTime := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	sentiment, trades := pipeline.FixtureTables()
	res, err := pipeline.New(pipeline.DefaultOptions()).
		WithClock(func() time.Time { return fixedTime }).
		WithIDGenerator(func() string { return "run-fixture" }).
		Run(context.Background(), sentiment, trades)
	if err != nil {
		t.Fatalf("pipeline run failed: %v", err)
	}
	return res
}

func TestGenerate_Deterministic(t *testing.T) {
	var first string
	for run := 0; run < 5; run++ {
		report, err := Generate(runFixtures(t))
		if err != nil {
			t.Fatalf("Run %d: Generate failed: %v", run, err)
		}
		md := RenderMarkdown(report)
		if first == "" {
			first = md
			continue
		}
		if md != first {
			t.Errorf("Run %d: markdown output differs between runs", run)
		}
	}
}

func TestGenerate_Fields(t *testing.T) {
	report, err := Generate(runFixtures(t))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if report.RunID != "run-fixture" {
		t.Errorf("expected RunID run-fixture, got %s", report.RunID)
	}
	if report.DataSummary.DateRangeStart != "2024-01-01" || report.DataSummary.DateRangeEnd != "2024-01-07" {
		t.Errorf("unexpected date range %s..%s", report.DataSummary.DateRangeStart, report.DataSummary.DateRangeEnd)
	}
	if report.DataSummary.MatchedRows != 23 || report.DataSummary.MergedRows != 24 {
		t.Errorf("expected 23/24 matched rows, got %d/%d", report.DataSummary.MatchedRows, report.DataSummary.MergedRows)
	}
	if len(report.Comparison) != 2 {
		t.Fatalf("expected 2 comparison rows, got %d", len(report.Comparison))
	}
	if report.Comparison[0].Classification != "Fear" {
		t.Errorf("expected comparison sorted by class, got %s first", report.Comparison[0].Classification)
	}
	if len(report.Segments) != 4 {
		t.Errorf("expected 4 segments, got %d", len(report.Segments))
	}
	if len(report.DataQuality.Tables) != 2 {
		t.Fatalf("expected 2 quality tables, got %d", len(report.DataQuality.Tables))
	}
	if got := report.DataQuality.Tables[1].MissingByCol["Leverage"]; got != 1 {
		t.Errorf("expected 1 missing Leverage cell, got %d", got)
	}
}

func TestGenerate_NoResult(t *testing.T) {
	if _, err := Generate(nil); err != ErrNoResult {
		t.Errorf("expected ErrNoResult, got %v", err)
	}
}

func TestRenderMarkdown_ContainsRequiredSections(t *testing.T) {
	report, err := Generate(runFixtures(t))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	md := RenderMarkdown(report)

	sections := []string{
		"# Trader Performance vs Market Sentiment",
		"## Data Summary",
		"## Data Quality",
		"### Sufficiency Checks",
		"### Warnings",
		"## Performance by Sentiment",
		"### Leverage by Sentiment",
		"## Trader Segments",
		"## Recommendations",
		"## Column Resolution",
		"Generated: 2024-01-15T12:00:00Z",
		"unclassified_rows_excluded",
		"1. Trend Following in Greed: Increase position sizes during Greed periods.",
		"| trades | closedPnL | Closed PnL | alias |",
	}
	for _, s := range sections {
		if !strings.Contains(md, s) {
			t.Errorf("markdown missing %q", s)
		}
	}
}

func TestRenderText(t *testing.T) {
	report, err := Generate(runFixtures(t))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	text := RenderText(report)
	for _, s := range []string{"Performance by sentiment", "Trader segments", "Recommendations", "238.73"} {
		if !strings.Contains(text, s) {
			t.Errorf("text output missing %q", s)
		}
	}

	quality := RenderQualityText(report)
	for _, s := range []string{"Data quality", "Sufficiency", "Leverage=1", "PASS"} {
		if !strings.Contains(quality, s) {
			t.Errorf("quality output missing %q", s)
		}
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{1234.567, "1,234.57"},
		{-1234.565, "-1,234.57"},
		{0.1 + 0.2, "0.30"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderCSV(t *testing.T) {
	res := runFixtures(t)
	report, err := Generate(res)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	daily, err := RenderDailyCSV(res.Daily)
	if err != nil {
		t.Fatalf("RenderDailyCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(daily), "\n")
	if len(lines) != len(res.Daily)+1 {
		t.Errorf("expected %d lines, got %d", len(res.Daily)+1, len(lines))
	}
	if lines[0] != "account,date,classification,total_pnl,win_rate,avg_size,trade_count,avg_leverage" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0xa1,2024-01-01,Fear,12.500000,1.000000,1200.000000,1,2.000000") {
		t.Errorf("unexpected first row %q", lines[1])
	}

	comp, err := RenderComparisonCSV(report.Comparison)
	if err != nil {
		t.Fatalf("RenderComparisonCSV failed: %v", err)
	}
	if !strings.Contains(comp, "Greed,10,238.725000") {
		t.Errorf("comparison csv missing Greed row:\n%s", comp)
	}

	seg, err := RenderSegmentsCSV(report.Segments)
	if err != nil {
		t.Fatalf("RenderSegmentsCSV failed: %v", err)
	}
	if strings.Count(seg, "\n") != 5 {
		t.Errorf("expected header + 4 segment rows:\n%s", seg)
	}
}

func TestWriteFiles(t *testing.T) {
	res := runFixtures(t)
	report, err := Generate(res)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	if err := WriteFiles(dir, report, res.Daily); err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}

	for _, f := range []string{ReportFile, ReportJSONFile, DailyMetricsFile, ComparisonFile, TraderSegmentFile} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("expected %s to exist: %v", f, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, ReportJSONFile))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report.json is not valid JSON: %v", err)
	}
	if decoded.RunID != "run-fixture" || len(decoded.Recommendations) != 2 {
		t.Errorf("unexpected decoded report: %+v", decoded.RunID)
	}
}
