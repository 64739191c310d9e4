package domain

import "fmt"

// Warning codes for degraded-data conditions. Codes are stable and safe to match on.
const (
	WarnMissingClassificationColumn = "missing_classification_column"
	WarnMissingSentimentDateColumn  = "missing_sentiment_date_column"
	WarnMissingPnLColumn            = "missing_pnl_column"
	WarnUnparseableTimestamps       = "unparseable_timestamps"
	WarnUnparseableSentimentDates   = "unparseable_sentiment_dates"
	WarnUnparseableNumericValues    = "unparseable_numeric_values"
	WarnDuplicateSentimentDates     = "duplicate_sentiment_dates"
	WarnUnclassifiedRowsExcluded    = "unclassified_rows_excluded"
	WarnClusterCountReduced         = "cluster_count_reduced"
	WarnMissingAccountRows          = "missing_account_rows"
)

// Warning reports a degraded-data condition alongside a still-valid result.
type Warning struct {
	Code    string // one of the Warn* constants
	Stage   string // pipeline stage that raised it
	Message string
	Count   int // affected rows, when meaningful
}

func (w Warning) String() string {
	if w.Count > 0 {
		return fmt.Sprintf("[%s] %s: %s (%d rows)", w.Stage, w.Code, w.Message, w.Count)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Stage, w.Code, w.Message)
}

// Warnings is an ordered diagnostics channel.
type Warnings []Warning

// Has reports whether a warning with the given code is present.
func (ws Warnings) Has(code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Get returns the first warning with the given code.
func (ws Warnings) Get(code string) (Warning, bool) {
	for _, w := range ws {
		if w.Code == code {
			return w, true
		}
	}
	return Warning{}, false
}

// Resolution rules recorded for each canonical column.
const (
	RuleCanonical   = "canonical"   // canonical name already present
	RuleAlias       = "alias"       // renamed from an alias or case variant
	RuleSynthesized = "synthesized" // not found; filled with a default
	RuleMissing     = "missing"     // not found; left absent
	RuleDerived     = "derived"     // computed from another column (trade date from time)
)

// ColumnResolution records how one canonical column was resolved from raw input.
type ColumnResolution struct {
	Table     string // "sentiment" | "trades"
	Canonical string
	Source    string // raw column name; empty unless Rule is canonical or alias
	Rule      string
}
