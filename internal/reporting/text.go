package reporting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Terminal styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			MarginTop(1)

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))
)

// RenderText renders report for a terminal.
func RenderText(r *Report) string {
	var blocks []string

	blocks = append(blocks, titleStyle.Render("Trader Performance vs Market Sentiment"))
	blocks = append(blocks, mutedStyle.Render(fmt.Sprintf("run %s · %s · time column %q (%s)",
		r.RunID, r.GeneratedAt.Format("2006-01-02 15:04 MST"), r.TimeColumn, r.TimeUnit)))

	s := r.DataSummary
	blocks = append(blocks, sectionStyle.Render("Summary"))
	blocks = append(blocks, newTable().
		Headers("Metric", "Value").
		Row("Trades", humanize.Comma(int64(s.TotalTrades))).
		Row("Traders", humanize.Comma(int64(s.UniqueTraders))).
		Row("Total PnL", Money(s.TotalPnL)).
		Row("Avg leverage", fmt.Sprintf("%.2fx", s.AvgLeverage)).
		Row("Date range", fmt.Sprintf("%s .. %s", orDash(s.DateRangeStart), orDash(s.DateRangeEnd))).
		Row("Matched", fmt.Sprintf("%s / %s", humanize.Comma(int64(s.MatchedRows)), humanize.Comma(int64(s.MergedRows)))).
		Render())

	if len(r.Comparison) > 0 {
		t := newTable().Headers("Sentiment", "Rows", "Mean PnL", "Median PnL", "Std PnL", "Win rate", "Leverage", "Trades/day")
		for _, c := range r.Comparison {
			t.Row(c.Classification, strconv.Itoa(c.Rows), signed(c.MeanPnL), Money(c.MedianPnL), Money(c.StdPnL),
				percent(c.MeanWinRate), fmt.Sprintf("%.2fx", c.MeanLeverage), fmt.Sprintf("%.1f", c.MeanTradeCount))
		}
		blocks = append(blocks, sectionStyle.Render("Performance by sentiment"), t.Render())
	}

	if len(r.Clusters) > 0 {
		t := newTable().Headers("Cluster", "Traders", "Mean PnL", "Leverage", "Trades", "Win rate")
		for _, c := range r.Clusters {
			t.Row(strconv.Itoa(c.Cluster), strconv.Itoa(c.Traders), signed(c.MeanPnL),
				fmt.Sprintf("%.2fx", c.MeanLeverage), fmt.Sprintf("%.1f", c.MeanTrades), percent(c.MeanWinRate))
		}
		blocks = append(blocks, sectionStyle.Render("Trader segments"), t.Render())
	}

	blocks = append(blocks, sectionStyle.Render("Recommendations"))
	for i, rec := range r.Recommendations {
		blocks = append(blocks, fmt.Sprintf("%d. %s", i+1, rec))
	}

	if len(r.Warnings) > 0 {
		blocks = append(blocks, sectionStyle.Render("Warnings"))
		for _, w := range r.Warnings {
			blocks = append(blocks, warningStyle.Render("! "+w.Code)+" "+w.Message)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

// RenderQualityText renders only the data quality section for a terminal.
func RenderQualityText(r *Report) string {
	var blocks []string
	blocks = append(blocks, titleStyle.Render("Data quality"))

	t := newTable().Headers("Table", "Rows", "Columns", "Missing cells", "Duplicate rows")
	for _, q := range r.DataQuality.Tables {
		t.Row(q.Table, humanize.Comma(int64(q.Rows)), strconv.Itoa(q.Columns),
			humanize.Comma(int64(q.MissingCells)), humanize.Comma(int64(q.DuplicateRows)))
	}
	blocks = append(blocks, t.Render())

	for _, q := range r.DataQuality.Tables {
		if len(q.MissingByCol) == 0 {
			continue
		}
		var parts []string
		for _, col := range sortedKeys(q.MissingByCol) {
			parts = append(parts, fmt.Sprintf("%s=%d", col, q.MissingByCol[col]))
		}
		blocks = append(blocks, mutedStyle.Render(q.Table+" gaps: "+strings.Join(parts, ", ")))
	}

	checks := newTable().Headers("Check", "Threshold", "Actual", "Status")
	for _, c := range r.DataQuality.SufficiencyChecks {
		status := positiveStyle.Render("PASS")
		if !c.Pass {
			status = negativeStyle.Render("FAIL")
		}
		checks.Row(c.Name, c.Threshold, c.Actual, status)
	}
	blocks = append(blocks, sectionStyle.Render("Sufficiency"), checks.Render())

	if len(r.Resolutions) > 0 {
		res := newTable().Headers("Table", "Canonical", "Source", "Rule")
		for _, cr := range r.Resolutions {
			res.Row(cr.Table, cr.Canonical, orDash(cr.Source), cr.Rule)
		}
		blocks = append(blocks, sectionStyle.Render("Column resolution"), res.Render())
	}

	for _, w := range r.Warnings {
		blocks = append(blocks, warningStyle.Render("! "+w.Code)+" "+w.Message)
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

// Money formats an amount with thousands separators and two decimals, rounding
// half away from zero in decimal arithmetic ("-1,234.57").
func Money(v float64) string {
	rounded := decimal.NewFromFloat(v).Round(2).InexactFloat64()
	return humanize.FormatFloat("#,###.##", rounded)
}

func signed(v float64) string {
	s := Money(v)
	switch {
	case v > 0:
		return positiveStyle.Render("+" + s)
	case v < 0:
		return negativeStyle.Render(s)
	default:
		return s
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle)
}
