// Package recommend turns the sentiment comparison into strategy guidance.
package recommend

import (
	"sentiment-lab/internal/domain"
	"sentiment-lab/internal/metrics"
)

// Recommendation texts.
const (
	TrendFollowingGreed = "Trend Following in Greed: Increase position sizes during Greed periods."
	RiskManagementFear  = "Risk Management in Fear: Reduce leverage and tighten stop-losses during Fear periods."
	ContrarianFear      = "Contrarian Approach: Look for mean reversion opportunities during Fear periods."
	CapitalPreservation = "Capital Preservation: Reduce exposure during high volatility Greed periods."
)

// FromComparison returns two recommendations based on mean daily PnL under Fear
// versus Greed. A missing class counts as 0. Ties fall to the contrarian branch.
func FromComparison(stats []domain.ClassificationStats) []string {
	fear := meanPnL(stats, domain.ClassificationFear)
	greed := meanPnL(stats, domain.ClassificationGreed)

	if fear < greed {
		return []string{TrendFollowingGreed, RiskManagementFear}
	}
	return []string{ContrarianFear, CapitalPreservation}
}

func meanPnL(stats []domain.ClassificationStats, label string) float64 {
	s, ok := metrics.Lookup(stats, label)
	if !ok {
		return 0
	}
	return s.MeanPnL
}
