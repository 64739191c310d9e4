package metrics

import (
	"sort"

	"sentiment-lab/internal/domain"
)

// DefaultMaxLeverage drops obviously broken leverage values from the profile.
const DefaultMaxLeverage = 100.0

// LeverageBySentiment profiles trade-level leverage per sentiment class.
// Only merged rows with a leverage value and a classification count, and
// leverage above maxLeverage is discarded (maxLeverage <= 0 uses
// DefaultMaxLeverage). Result is sorted by classification.
func LeverageBySentiment(merged []domain.JoinedRecord, maxLeverage float64) []domain.LeverageStats {
	if maxLeverage <= 0 {
		maxLeverage = DefaultMaxLeverage
	}

	byClass := make(map[string][]float64)
	for _, m := range merged {
		label := m.Classification()
		if label == "" || m.Trade.Leverage == nil {
			continue
		}
		lev := *m.Trade.Leverage
		if lev > maxLeverage {
			continue
		}
		byClass[label] = append(byClass[label], lev)
	}

	out := make([]domain.LeverageStats, 0, len(byClass))
	for label, values := range byClass {
		out = append(out, domain.LeverageStats{
			Classification: label,
			Trades:         len(values),
			Mean:           computeMean(values),
			Median:         computeMedian(values),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Classification < out[j].Classification
	})
	return out
}
