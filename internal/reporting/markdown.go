package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Trader Performance vs Market Sentiment\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s | Time column: %s (%s)\n\n", r.RunID, r.TimeColumn, r.TimeUnit))

	// Data Summary
	s := r.DataSummary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Trades | %d |\n", s.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Unique Traders | %d |\n", s.UniqueTraders))
	sb.WriteString(fmt.Sprintf("| Total PnL | %.2f |\n", s.TotalPnL))
	sb.WriteString(fmt.Sprintf("| Avg Leverage | %.2f |\n", s.AvgLeverage))
	sb.WriteString(fmt.Sprintf("| Date Range | %s .. %s |\n", orDash(s.DateRangeStart), orDash(s.DateRangeEnd)))
	sb.WriteString(fmt.Sprintf("| Matched Rows | %d / %d |\n", s.MatchedRows, s.MergedRows))
	for _, label := range sortedKeys(s.SentimentDistribution) {
		sb.WriteString(fmt.Sprintf("| Days: %s | %d |\n", label, s.SentimentDistribution[label]))
	}
	sb.WriteString("\n")

	// Data Quality
	sb.WriteString("## Data Quality\n\n")
	if len(r.DataQuality.Tables) > 0 {
		sb.WriteString("| Table | Rows | Columns | Missing Cells | Duplicate Rows |\n")
		sb.WriteString("|-------|------|---------|---------------|----------------|\n")
		for _, t := range r.DataQuality.Tables {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d |\n",
				t.Table, t.Rows, t.Columns, t.MissingCells, t.DuplicateRows))
		}
		sb.WriteString("\n")
	}
	if len(r.DataQuality.SufficiencyChecks) > 0 {
		sb.WriteString("### Sufficiency Checks\n\n")
		sb.WriteString("| Check | Threshold | Actual | Status |\n")
		sb.WriteString("|-------|-----------|--------|--------|\n")
		for _, check := range r.DataQuality.SufficiencyChecks {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				check.Name, check.Threshold, check.Actual, passFail(check.Pass)))
		}
		sb.WriteString("\n")

		// Overall status
		if r.DataQuality.AllChecksPassed {
			sb.WriteString("**All checks passed.**\n\n")
		} else {
			sb.WriteString("**Some checks failed.** Read the comparison and segments with care.\n\n")
		}
	}

	// Warnings
	if len(r.Warnings) > 0 {
		sb.WriteString("### Warnings\n\n")
		for _, w := range r.Warnings {
			if w.Count > 0 {
				sb.WriteString(fmt.Sprintf("- `%s` (%s, %d): %s\n", w.Code, w.Stage, w.Count, w.Message))
			} else {
				sb.WriteString(fmt.Sprintf("- `%s` (%s): %s\n", w.Code, w.Stage, w.Message))
			}
		}
		sb.WriteString("\n")
	}

	// Comparison
	sb.WriteString("## Performance by Sentiment\n\n")
	if len(r.Comparison) > 0 {
		sb.WriteString("| Sentiment | Rows | Mean PnL | Median PnL | Std PnL | Win Rate | Leverage | Trades/Day |\n")
		sb.WriteString("|-----------|------|----------|------------|---------|----------|----------|------------|\n")
		for _, c := range r.Comparison {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.4f | %.4f | %.4f | %.4f | %.2f | %.2f |\n",
				c.Classification, c.Rows, c.MeanPnL, c.MedianPnL, c.StdPnL,
				c.MeanWinRate, c.MeanLeverage, c.MeanTradeCount))
		}
	} else {
		sb.WriteString("No sentiment comparison available.\n")
	}
	sb.WriteString("\n")

	// Leverage
	if len(r.Leverage) > 0 {
		sb.WriteString("### Leverage by Sentiment\n\n")
		sb.WriteString("| Sentiment | Trades | Mean | Median |\n")
		sb.WriteString("|-----------|--------|------|--------|\n")
		for _, l := range r.Leverage {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.2f |\n", l.Classification, l.Trades, l.Mean, l.Median))
		}
		sb.WriteString("\n")
	}

	// Segments
	sb.WriteString("## Trader Segments\n\n")
	if len(r.Clusters) > 0 {
		sb.WriteString("| Cluster | Traders | Mean PnL | Mean Leverage | Mean Trades | Mean Win Rate |\n")
		sb.WriteString("|---------|---------|----------|---------------|-------------|---------------|\n")
		for _, c := range r.Clusters {
			sb.WriteString(fmt.Sprintf("| %d | %d | %.2f | %.2f | %.1f | %.4f |\n",
				c.Cluster, c.Traders, c.MeanPnL, c.MeanLeverage, c.MeanTrades, c.MeanWinRate))
		}
		sb.WriteString("\n")

		sb.WriteString("| Account | Cluster | Lifetime PnL | Avg Leverage | Trades | Win Rate |\n")
		sb.WriteString("|---------|---------|--------------|--------------|--------|----------|\n")
		for _, s := range r.Segments {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.2f | %.2f | %d | %.4f |\n",
				s.Account, s.Cluster, s.LifetimePnL, s.AvgLeverage, s.TotalTrades, s.WinRate))
		}
	} else {
		sb.WriteString("No traders to segment.\n")
	}
	sb.WriteString("\n")

	// Recommendations
	sb.WriteString("## Recommendations\n\n")
	for i, rec := range r.Recommendations {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
	}
	sb.WriteString("\n")

	// Column resolution
	if len(r.Resolutions) > 0 {
		sb.WriteString("## Column Resolution\n\n")
		sb.WriteString("| Table | Canonical | Source | Rule |\n")
		sb.WriteString("|-------|-----------|--------|------|\n")
		for _, res := range r.Resolutions {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", res.Table, res.Canonical, orDash(res.Source), res.Rule))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
