package reporting

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"sentiment-lab/internal/domain"
)

// RenderDailyCSV renders per trader/day/class metrics as CSV string.
// Missing averages are written as empty cells.
func RenderDailyCSV(daily []domain.TraderDailyMetric) (string, error) {
	rows := [][]string{{"account", "date", "classification", "total_pnl", "win_rate", "avg_size", "trade_count", "avg_leverage"}}
	for _, d := range daily {
		rows = append(rows, []string{
			d.Account,
			domain.DayKey(d.Date),
			d.Classification,
			ftoa(d.TotalPnL),
			ftoa(d.WinRate),
			optional(d.AvgSize),
			strconv.Itoa(d.TradeCount),
			optional(d.AvgLeverage),
		})
	}
	return writeCSV(rows)
}

// RenderComparisonCSV renders the per-class comparison as CSV string.
func RenderComparisonCSV(rows []ComparisonRow) (string, error) {
	out := [][]string{{"classification", "rows", "mean_pnl", "median_pnl", "std_pnl", "mean_win_rate", "mean_leverage", "mean_trade_count"}}
	for _, c := range rows {
		out = append(out, []string{
			c.Classification,
			strconv.Itoa(c.Rows),
			ftoa(c.MeanPnL),
			ftoa(c.MedianPnL),
			ftoa(c.StdPnL),
			ftoa(c.MeanWinRate),
			ftoa(c.MeanLeverage),
			ftoa(c.MeanTradeCount),
		})
	}
	return writeCSV(out)
}

// RenderSegmentsCSV renders trader segments as CSV string.
func RenderSegmentsCSV(rows []SegmentRow) (string, error) {
	out := [][]string{{"account", "lifetime_pnl", "avg_leverage", "total_trades", "win_rate", "cluster"}}
	for _, s := range rows {
		out = append(out, []string{
			s.Account,
			ftoa(s.LifetimePnL),
			ftoa(s.AvgLeverage),
			strconv.Itoa(s.TotalTrades),
			ftoa(s.WinRate),
			strconv.Itoa(s.Cluster),
		})
	}
	return writeCSV(out)
}

func writeCSV(rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return ftoa(*v)
}
