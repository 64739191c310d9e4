package metrics

import (
	"sort"

	"sentiment-lab/internal/domain"
)

// DefaultLeverage is used for every trade when the dataset has no leverage column.
const DefaultLeverage = 1.0

// DailyOptions controls AggregateDaily.
type DailyOptions struct {
	// LeverageColumnPresent is false when the trade table had no leverage-like
	// column at all; every trade then counts as DefaultLeverage. When true,
	// trades with a missing leverage value are left out of the mean instead.
	LeverageColumnPresent bool
}

type dailyKey struct {
	account        string
	date           string
	classification string
}

type dailyAcc struct {
	metric    domain.TraderDailyMetric
	pnl       []float64
	wins      int
	sizes     []*float64
	leverages []*float64
}

// AggregateDaily computes one TraderDailyMetric per distinct
// (account, date, classification) in merged. Rows without an account, a date
// or a sentiment classification do not form a group; see Excluded.
// Output is sorted by account, date, classification. merged is not modified.
func AggregateDaily(merged []domain.JoinedRecord, opts DailyOptions) []domain.TraderDailyMetric {
	groups := make(map[dailyKey]*dailyAcc)

	for _, m := range merged {
		if !groupable(m) {
			continue
		}
		key := dailyKey{
			account:        m.Trade.Account,
			date:           domain.DayKey(m.Trade.Date),
			classification: m.Classification(),
		}
		acc, ok := groups[key]
		if !ok {
			acc = &dailyAcc{metric: domain.TraderDailyMetric{
				Account:        key.account,
				Date:           m.Trade.Date,
				Classification: key.classification,
			}}
			groups[key] = acc
		}

		acc.pnl = append(acc.pnl, m.Trade.ClosedPnL)
		if m.Trade.Win() {
			acc.wins++
		}
		acc.sizes = append(acc.sizes, m.Trade.Size)
		if opts.LeverageColumnPresent {
			acc.leverages = append(acc.leverages, m.Trade.Leverage)
		} else {
			acc.leverages = append(acc.leverages, ptr(DefaultLeverage))
		}
	}

	out := make([]domain.TraderDailyMetric, 0, len(groups))
	for _, acc := range groups {
		m := acc.metric
		m.TradeCount = len(acc.pnl)
		m.TotalPnL = sumPnL(acc.pnl)
		m.WinRate = computeWinRate(acc.wins, m.TradeCount)
		if v, ok := meanOf(acc.sizes); ok {
			m.AvgSize = ptr(v)
		}
		if v, ok := meanOf(acc.leverages); ok {
			m.AvgLeverage = ptr(v)
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Account != out[j].Account {
			return out[i].Account < out[j].Account
		}
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Classification < out[j].Classification
	})

	return out
}

// Excluded counts merged rows that AggregateDaily leaves out because they lack
// an account, a date or a sentiment classification.
func Excluded(merged []domain.JoinedRecord) int {
	n := 0
	for _, m := range merged {
		if !groupable(m) {
			n++
		}
	}
	return n
}

func groupable(m domain.JoinedRecord) bool {
	return m.Trade.Account != "" && m.Trade.HasDate() && m.Classification() != ""
}
