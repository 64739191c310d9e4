package reporting

import (
	"errors"
	"time"

	"sentiment-lab/internal/domain"
	"sentiment-lab/internal/pipeline"
)

// ErrNoResult is returned when there is no pipeline result to report.
var ErrNoResult = errors.New("no pipeline result")

// Generate builds the report view of a pipeline result.
// Output is deterministic for a given result.
func Generate(res *pipeline.Result) (*Report, error) {
	if res == nil || res.Normalized == nil {
		return nil, ErrNoResult
	}
	norm := res.Normalized

	r := &Report{
		RunID:           res.RunID,
		GeneratedAt:     res.GeneratedAt.UTC(),
		TimeColumn:      norm.TimeColumn,
		TimeUnit:        norm.TimeUnit,
		DataSummary:     generateDataSummary(res),
		DataQuality:     generateDataQuality(res),
		Recommendations: append([]string(nil), res.Recommendations...),
		Warnings:        warningRows(res.Warnings),
	}

	for _, c := range res.Comparison {
		r.Comparison = append(r.Comparison, ComparisonRow(c))
	}
	for _, l := range res.Leverage {
		r.Leverage = append(r.Leverage, LeverageRow(l))
	}
	for _, s := range res.Segments {
		r.Segments = append(r.Segments, SegmentRow(s))
	}
	for _, p := range res.Profiles {
		r.Clusters = append(r.Clusters, ClusterRow(p))
	}
	for _, cr := range norm.Resolutions {
		r.Resolutions = append(r.Resolutions, ResolutionRow(cr))
	}

	return r, nil
}

func generateDataSummary(res *pipeline.Result) DataSummary {
	s := DataSummary{
		TotalTrades:           res.Summary.TotalTrades,
		UniqueTraders:         res.Summary.UniqueTraders,
		TotalPnL:              res.Summary.TotalPnL,
		AvgLeverage:           res.Summary.AvgLeverage,
		SentimentDistribution: res.Summary.SentimentDistribution,
		MergedRows:            len(res.Normalized.Merged),
	}

	var first, last time.Time
	for _, t := range res.Normalized.Trades {
		if !t.HasDate() {
			continue
		}
		if first.IsZero() || t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
	}
	s.DateRangeStart = domain.DayKey(first)
	s.DateRangeEnd = domain.DayKey(last)

	for _, m := range res.Normalized.Merged {
		if m.Matched() {
			s.MatchedRows++
		}
	}
	return s
}

func generateDataQuality(res *pipeline.Result) DataQualitySection {
	q := DataQualitySection{AllChecksPassed: res.Sufficiency.AllPass}
	for _, t := range res.Quality {
		row := TableQualityRow{
			Table:         t.Table,
			Rows:          t.Rows,
			Columns:       t.Columns,
			MissingCells:  t.MissingTotal(),
			DuplicateRows: t.DuplicateRows,
		}
		for _, m := range t.Missing {
			if m.Missing == 0 {
				continue
			}
			if row.MissingByCol == nil {
				row.MissingByCol = make(map[string]int)
			}
			row.MissingByCol[m.Column] = m.Missing
		}
		q.Tables = append(q.Tables, row)
	}
	for _, c := range res.Sufficiency.Checks {
		q.SufficiencyChecks = append(q.SufficiencyChecks, SufficiencyCheckRow(c))
	}
	return q
}
