package reporting

import (
	"time"

	"sentiment-lab/internal/domain"
)

// Report is the presentation view of one pipeline run.
type Report struct {
	// Metadata
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	TimeColumn  string    `json:"time_column"`
	TimeUnit    string    `json:"time_unit"`

	// Data Summary
	DataSummary DataSummary `json:"data_summary"`

	// Data Quality (raw table profiles and sufficiency checks)
	DataQuality DataQualitySection `json:"data_quality"`

	// Comparison by sentiment class, sorted by class
	Comparison []ComparisonRow `json:"comparison"`

	// Leverage profile by sentiment class
	Leverage []LeverageRow `json:"leverage"`

	// Segments, sorted by account; clusters sorted by label
	Segments []SegmentRow `json:"segments"`
	Clusters []ClusterRow `json:"clusters"`

	Recommendations []string `json:"recommendations"`

	// Diagnostics
	Warnings    []WarningRow    `json:"warnings"`
	Resolutions []ResolutionRow `json:"resolutions"`
}

// DataSummary contains headline figures.
type DataSummary struct {
	TotalTrades           int            `json:"total_trades"`
	UniqueTraders         int            `json:"unique_traders"`
	TotalPnL              float64        `json:"total_pnl"`
	AvgLeverage           float64        `json:"avg_leverage"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	DateRangeStart        string         `json:"date_range_start,omitempty"` // YYYY-MM-DD
	DateRangeEnd          string         `json:"date_range_end,omitempty"`
	MatchedRows           int            `json:"matched_rows"`
	MergedRows            int            `json:"merged_rows"`
}

// DataQualitySection contains raw table profiles and sufficiency checks.
type DataQualitySection struct {
	Tables            []TableQualityRow     `json:"tables"`
	SufficiencyChecks []SufficiencyCheckRow `json:"sufficiency_checks"`
	AllChecksPassed   bool                  `json:"all_checks_passed"`
}

// TableQualityRow profiles one raw table.
type TableQualityRow struct {
	Table         string         `json:"table"`
	Rows          int            `json:"rows"`
	Columns       int            `json:"columns"`
	MissingCells  int            `json:"missing_cells"`
	MissingByCol  map[string]int `json:"missing_by_column,omitempty"` // only columns with gaps
	DuplicateRows int            `json:"duplicate_rows"`
}

// SufficiencyCheckRow represents one sufficiency criterion.
type SufficiencyCheckRow struct {
	Name      string `json:"name"`
	Threshold string `json:"threshold"`
	Actual    string `json:"actual"`
	Pass      bool   `json:"pass"`
}

// ComparisonRow is one sentiment class.
type ComparisonRow struct {
	Classification string  `json:"classification"`
	Rows           int     `json:"rows"`
	MeanPnL        float64 `json:"mean_pnl"`
	MedianPnL      float64 `json:"median_pnl"`
	StdPnL         float64 `json:"std_pnl"`
	MeanWinRate    float64 `json:"mean_win_rate"`
	MeanLeverage   float64 `json:"mean_leverage"`
	MeanTradeCount float64 `json:"mean_trade_count"`
}

// LeverageRow is trade-level leverage for one sentiment class.
type LeverageRow struct {
	Classification string  `json:"classification"`
	Trades         int     `json:"trades"`
	Mean           float64 `json:"mean"`
	Median         float64 `json:"median"`
}

// SegmentRow is one trader.
type SegmentRow struct {
	Account     string  `json:"account"`
	LifetimePnL float64 `json:"lifetime_pnl"`
	AvgLeverage float64 `json:"avg_leverage"`
	TotalTrades int     `json:"total_trades"`
	WinRate     float64 `json:"win_rate"`
	Cluster     int     `json:"cluster"`
}

// ClusterRow profiles one cluster.
type ClusterRow struct {
	Cluster      int     `json:"cluster"`
	Traders      int     `json:"traders"`
	MeanPnL      float64 `json:"mean_pnl"`
	MeanLeverage float64 `json:"mean_leverage"`
	MeanTrades   float64 `json:"mean_trades"`
	MeanWinRate  float64 `json:"mean_win_rate"`
}

// WarningRow is one degraded-data warning.
type WarningRow struct {
	Code    string `json:"code"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// ResolutionRow records how a canonical column was found.
type ResolutionRow struct {
	Table     string `json:"table"`
	Canonical string `json:"canonical"`
	Source    string `json:"source,omitempty"`
	Rule      string `json:"rule"`
}

func warningRows(ws domain.Warnings) []WarningRow {
	out := make([]WarningRow, len(ws))
	for i, w := range ws {
		out[i] = WarningRow{Code: w.Code, Stage: w.Stage, Message: w.Message, Count: w.Count}
	}
	return out
}
