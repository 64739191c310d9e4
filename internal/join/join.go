// Package join attaches daily sentiment to trades.
package join

import (
	"sort"
	"time"

	"sentiment-lab/internal/domain"
)

// Left joins trades to sentiment on calendar day.
//
// Every trade appears in the output, in input order. A trade whose day has no
// sentiment record (or that has no day at all) appears once with a nil
// Sentiment. Sentiment records sharing a day fan out: the trade appears once per
// record, in sentiment input order. Callers wanting one row per trade must
// deduplicate sentiment first.
func Left(trades []domain.TradeRecord, sentiment []domain.SentimentRecord) []domain.JoinedRecord {
	byDay := make(map[string][]int, len(sentiment))
	for i, s := range sentiment {
		if !s.HasDate() {
			continue
		}
		key := domain.DayKey(s.Date)
		byDay[key] = append(byDay[key], i)
	}

	merged := make([]domain.JoinedRecord, 0, len(trades))
	for _, t := range trades {
		var matches []int
		if t.HasDate() {
			matches = byDay[domain.DayKey(t.Date)]
		}
		if len(matches) == 0 {
			merged = append(merged, domain.JoinedRecord{Trade: t})
			continue
		}
		for _, idx := range matches {
			s := sentiment[idx]
			merged = append(merged, domain.JoinedRecord{Trade: t, Sentiment: &s})
		}
	}
	return merged
}

// DuplicateDates returns the days that carry more than one sentiment record,
// sorted ascending. These are the days on which Left fans out.
func DuplicateDates(sentiment []domain.SentimentRecord) []time.Time {
	counts := make(map[string]int)
	days := make(map[string]time.Time)
	for _, s := range sentiment {
		if !s.HasDate() {
			continue
		}
		key := domain.DayKey(s.Date)
		counts[key]++
		days[key] = s.Date
	}

	var dups []time.Time
	for key, n := range counts {
		if n > 1 {
			dups = append(dups, days[key])
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].Before(dups[j]) })
	return dups
}

// MatchRate returns the fraction of merged rows that found sentiment.
func MatchRate(merged []domain.JoinedRecord) float64 {
	if len(merged) == 0 {
		return 0
	}
	matched := 0
	for _, m := range merged {
		if m.Matched() {
			matched++
		}
	}
	return float64(matched) / float64(len(merged))
}
