package metrics

import (
	"sentiment-lab/internal/domain"
)

// Summarize computes headline figures over normalized trades. When the trade
// table had no leverage column every trade counts as DefaultLeverage; otherwise
// AvgLeverage is the mean of the non-missing values (0 when there are none).
func Summarize(trades []domain.TradeRecord, sentiment []domain.SentimentRecord, leverageColumnPresent bool) domain.Summary {
	s := domain.Summary{
		TotalTrades:           len(trades),
		SentimentDistribution: make(map[string]int),
	}

	accounts := make(map[string]struct{})
	pnl := make([]float64, 0, len(trades))
	leverages := make([]*float64, 0, len(trades))
	for _, t := range trades {
		if t.Account != "" {
			accounts[t.Account] = struct{}{}
		}
		pnl = append(pnl, t.ClosedPnL)
		leverages = append(leverages, t.Leverage)
	}
	s.UniqueTraders = len(accounts)
	s.TotalPnL = sumPnL(pnl)

	switch {
	case !leverageColumnPresent && len(trades) > 0:
		s.AvgLeverage = DefaultLeverage
	case leverageColumnPresent:
		s.AvgLeverage, _ = meanOf(leverages)
	}

	for _, r := range sentiment {
		if r.Classification == "" {
			continue
		}
		s.SentimentDistribution[r.Classification]++
	}

	return s
}
