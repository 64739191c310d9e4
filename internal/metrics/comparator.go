package metrics

import (
	"sort"

	"sentiment-lab/internal/domain"
)

// CompareBySentiment rolls daily metrics up per classification label.
// PnL statistics are over the daily per-trader rows. One row per observed label,
// sorted by label. Labels beyond Fear/Greed are kept as-is.
func CompareBySentiment(daily []domain.TraderDailyMetric) []domain.ClassificationStats {
	byClass := make(map[string][]domain.TraderDailyMetric)
	for _, d := range daily {
		byClass[d.Classification] = append(byClass[d.Classification], d)
	}

	out := make([]domain.ClassificationStats, 0, len(byClass))
	for label, rows := range byClass {
		pnl := make([]float64, len(rows))
		winRates := make([]float64, len(rows))
		counts := make([]float64, len(rows))
		leverages := make([]*float64, len(rows))
		for i, r := range rows {
			pnl[i] = r.TotalPnL
			winRates[i] = r.WinRate
			counts[i] = float64(r.TradeCount)
			leverages[i] = r.AvgLeverage
		}

		mean := computeMean(pnl)
		meanLev, _ := meanOf(leverages)
		out = append(out, domain.ClassificationStats{
			Classification: label,
			Rows:           len(rows),
			MeanPnL:        mean,
			MedianPnL:      computeMedian(pnl),
			StdPnL:         computeStddev(pnl, mean),
			MeanWinRate:    computeMean(winRates),
			MeanLeverage:   meanLev,
			MeanTradeCount: computeMean(counts),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Classification < out[j].Classification
	})
	return out
}

// Lookup returns the stats row for label.
func Lookup(stats []domain.ClassificationStats, label string) (domain.ClassificationStats, bool) {
	for _, s := range stats {
		if s.Classification == label {
			return s, true
		}
	}
	return domain.ClassificationStats{}, false
}
