package domain

import "time"

// TraderDailyMetric aggregates one trader's trades on one day under one sentiment class.
type TraderDailyMetric struct {
	Account        string
	Date           time.Time
	Classification string

	TotalPnL    float64
	WinRate     float64  // fraction of trades with ClosedPnL > 0
	AvgSize     *float64 // nil when no trade in the group has a size
	TradeCount  int
	AvgLeverage *float64 // nil when no trade in the group has a leverage
}

// ClassificationStats rolls TraderDailyMetric rows up by sentiment class.
// PnL statistics are over daily per-trader totals, not raw trades.
type ClassificationStats struct {
	Classification string
	Rows           int // daily metric rows in the class

	MeanPnL   float64
	MedianPnL float64
	StdPnL    float64 // sample stddev; 0 for a single row

	MeanWinRate    float64
	MeanLeverage   float64
	MeanTradeCount float64
}

// LeverageStats describes trade-level leverage under one sentiment class.
type LeverageStats struct {
	Classification string
	Trades         int
	Mean           float64
	Median         float64
}

// Summary holds headline figures for a trades dataset.
type Summary struct {
	TotalTrades   int
	UniqueTraders int
	TotalPnL      float64
	AvgLeverage   float64

	// SentimentDistribution counts sentiment-table days per classification.
	SentimentDistribution map[string]int
}
