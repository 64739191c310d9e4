package pipeline

import (
	"fmt"

	"sentiment-lab/internal/domain"
	"sentiment-lab/internal/metrics"
)

// Sufficiency thresholds.
const (
	MinMatchRate     = 0.5
	MinDatedFraction = 0.95
)

// SufficiencyCheck represents one data sufficiency criterion.
type SufficiencyCheck struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// SufficiencyResult contains all checks. Failing checks never stop a run;
// they tell the reader how far to trust the comparison and segments.
type SufficiencyResult struct {
	Checks  []SufficiencyCheck
	AllPass bool
}

// CheckSufficiency evaluates a finished run. clusters is the requested cluster count.
func CheckSufficiency(res *Result, clusters int) SufficiencyResult {
	out := SufficiencyResult{AllPass: true}
	add := func(c SufficiencyCheck) {
		out.Checks = append(out.Checks, c)
		if !c.Pass {
			out.AllPass = false
		}
	}

	var trades []domain.TradeRecord
	var merged []domain.JoinedRecord
	if res.Normalized != nil {
		trades = res.Normalized.Trades
		merged = res.Normalized.Merged
	}

	// Check 1: trades with a usable date
	dated := 0
	for _, t := range trades {
		if t.HasDate() {
			dated++
		}
	}
	datedFrac := fraction(dated, len(trades))
	add(SufficiencyCheck{
		Name:      "Trades with a parseable timestamp",
		Threshold: fmt.Sprintf(">= %.0f%%", MinDatedFraction*100),
		Actual:    fmt.Sprintf("%.1f%% (%d/%d)", datedFrac*100, dated, len(trades)),
		Pass:      len(trades) > 0 && datedFrac >= MinDatedFraction,
	})

	// Check 2: trades matched to a sentiment day
	matched := 0
	for _, m := range merged {
		if m.Matched() {
			matched++
		}
	}
	matchRate := fraction(matched, len(merged))
	add(SufficiencyCheck{
		Name:      "Merged rows matched to sentiment",
		Threshold: fmt.Sprintf(">= %.0f%%", MinMatchRate*100),
		Actual:    fmt.Sprintf("%.1f%% (%d/%d)", matchRate*100, matched, len(merged)),
		Pass:      len(merged) > 0 && matchRate >= MinMatchRate,
	})

	// Check 3: both sides of the comparison observed
	_, hasFear := metrics.Lookup(res.Comparison, domain.ClassificationFear)
	_, hasGreed := metrics.Lookup(res.Comparison, domain.ClassificationGreed)
	add(SufficiencyCheck{
		Name:      "Fear and Greed both observed",
		Threshold: "both present",
		Actual:    fmt.Sprintf("fear=%t greed=%t", hasFear, hasGreed),
		Pass:      hasFear && hasGreed,
	})

	// Check 4: enough traders for the requested segmentation
	add(SufficiencyCheck{
		Name:      "Traders available for segmentation",
		Threshold: fmt.Sprintf(">= %d", clusters),
		Actual:    fmt.Sprintf("%d traders, %d clusters formed", len(res.Segments), res.Clusters),
		Pass:      res.Clusters >= clusters,
	})

	return out
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
