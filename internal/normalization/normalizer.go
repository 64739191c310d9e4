// Package normalization reconciles loosely-specified sentiment and trade tables
// into canonical records and joins them on calendar day.
package normalization

import (
	"fmt"
	"strings"
	"time"

	"sentiment-lab/internal/domain"
	"sentiment-lab/internal/join"
	"sentiment-lab/internal/table"
)

// Time units reported for the resolved trade time column.
const (
	UnitMilliseconds = "ms"
	UnitSeconds      = "s"
	UnitText         = "text"
)

const stage = "normalize"

// Result is the output of Normalize. Tables are renamed clones of the inputs;
// records are the typed view of the same rows.
type Result struct {
	SentimentTable *table.Table
	TradesTable    *table.Table

	Sentiment []domain.SentimentRecord
	Trades    []domain.TradeRecord
	Merged    []domain.JoinedRecord

	// TimeColumn is the raw column the trade date was derived from; TimeUnit is
	// one of UnitMilliseconds, UnitSeconds or UnitText.
	TimeColumn string
	TimeUnit   string

	// LeverageColumnPresent is false when no leverage-like column was found at all.
	LeverageColumnPresent bool

	Resolutions []domain.ColumnResolution
	Warnings    domain.Warnings
}

// Normalize resolves both schemas, types every row and left-joins trades to sentiment.
//
// The only fatal condition is a trade table without any time-bearing column,
// reported as *SchemaError. Everything else degrades with a warning.
func Normalize(sentimentRaw, tradesRaw *table.Table, rules Rules) (*Result, error) {
	if tradesRaw == nil {
		return nil, &SchemaError{Op: "normalize trades", Requirement: "trade table"}
	}
	if sentimentRaw == nil {
		sentimentRaw = table.New(nil, nil)
	}

	res := &Result{}

	res.SentimentTable, res.Sentiment = normalizeSentiment(trimmedClone(sentimentRaw), res)

	trades, err := normalizeTrades(trimmedClone(tradesRaw), rules, res)
	if err != nil {
		return nil, err
	}
	res.TradesTable = trades

	if dups := join.DuplicateDates(res.Sentiment); len(dups) > 0 {
		res.warn(domain.WarnDuplicateSentimentDates,
			fmt.Sprintf("sentiment has several rows for %d day(s), first %s; trades on those days fan out",
				len(dups), domain.DayKey(dups[0])),
			len(dups))
	}
	res.Merged = join.Left(res.Trades, res.Sentiment)

	return res, nil
}

func (r *Result) warn(code, msg string, count int) {
	r.Warnings = append(r.Warnings, domain.Warning{Code: code, Stage: stage, Message: msg, Count: count})
}

func (r *Result) resolve(tbl, canonical, source, rule string) {
	r.Resolutions = append(r.Resolutions, domain.ColumnResolution{
		Table: tbl, Canonical: canonical, Source: source, Rule: rule,
	})
}

func normalizeSentiment(t *table.Table, res *Result) (*table.Table, []domain.SentimentRecord) {
	dateIdx := resolveExact(t, ColSentimentDate, "sentiment", res)
	if dateIdx < 0 {
		res.warn(domain.WarnMissingSentimentDateColumn,
			fmt.Sprintf("no date column in sentiment data; found [%s]", strings.Join(t.Columns, ", ")), 0)
	}

	classIdx := resolveExact(t, ColClassification, "sentiment", res)
	if classIdx < 0 {
		res.warn(domain.WarnMissingClassificationColumn,
			fmt.Sprintf("no classification column in sentiment data; found [%s]", strings.Join(t.Columns, ", ")), 0)
	}

	records := make([]domain.SentimentRecord, t.Len())
	bad := 0
	for i := range t.Rows {
		var rec domain.SentimentRecord
		if dateIdx >= 0 {
			cell := t.Cell(i, dateIdx)
			if ts, ok := parseTime(cell); ok {
				rec.Date = domain.Day(ts)
			} else if !isMissingToken(cell) {
				bad++
			}
		}
		if classIdx >= 0 {
			rec.Classification = t.Cell(i, classIdx)
		}
		records[i] = rec
	}
	if bad > 0 {
		res.warn(domain.WarnUnparseableSentimentDates, "sentiment dates could not be parsed and were left empty", bad)
	}

	return t, records
}

// resolveExact renames the column equal (case-insensitively) to canonical and
// returns its index, or -1.
func resolveExact(t *table.Table, canonical, tbl string, res *Result) int {
	idx := t.Index(canonical)
	switch {
	case idx < 0:
		res.resolve(tbl, canonical, "", domain.RuleMissing)
	case t.Columns[idx] == canonical:
		res.resolve(tbl, canonical, canonical, domain.RuleCanonical)
	default:
		res.resolve(tbl, canonical, t.Columns[idx], domain.RuleAlias)
		t.Columns[idx] = canonical
	}
	return idx
}

func normalizeTrades(t *table.Table, rules Rules, res *Result) (*table.Table, error) {
	timeIdx := resolveTimeColumn(t, rules)
	if timeIdx < 0 {
		return nil, &SchemaError{
			Op:          "normalize trades",
			Requirement: fmt.Sprintf("time column (one of %s)", strings.Join(rules.TimeColumns, ", ")),
			Found:       append([]string(nil), t.Columns...),
		}
	}
	res.TimeColumn = t.Columns[timeIdx]
	res.resolve("trades", ColDate, res.TimeColumn, domain.RuleDerived)

	instants, unit, bad := parseTimeColumn(t.Column(timeIdx), rules.MillisecondThreshold)
	res.TimeUnit = unit
	if bad > 0 {
		res.warn(domain.WarnUnparseableTimestamps,
			fmt.Sprintf("values in %q could not be parsed; rows kept without a date", res.TimeColumn), bad)
	}

	idx := resolveAliases(t, rules, timeIdx, res)

	if idx[ColClosedPnL] < 0 {
		res.warn(domain.WarnMissingPnLColumn,
			"no PnL column found; closedPnL filled with 0.0, PnL-derived metrics are placeholders", 0)
		t = withConstantColumn(t, ColClosedPnL, "0.0")
		idx[ColClosedPnL] = len(t.Columns) - 1
		res.resolve("trades", ColClosedPnL, "", domain.RuleSynthesized)
	}
	res.LeverageColumnPresent = idx[ColLeverage] >= 0

	records := make([]domain.TradeRecord, t.Len())
	badNumbers := 0
	for i := range t.Rows {
		rec := domain.TradeRecord{
			Account: cellAt(t, i, idx[ColAccount]),
			Symbol:  cellAt(t, i, idx[ColSymbol]),
		}
		if ts := instants[i]; !ts.IsZero() {
			rec.Timestamp = ts
			rec.Date = domain.Day(ts)
		}

		if v, ok, malformed := numberAt(t, i, idx[ColClosedPnL]); ok {
			rec.ClosedPnL = v
		} else if malformed {
			badNumbers++
		}
		if v, ok, malformed := numberAt(t, i, idx[ColSize]); ok {
			rec.Size = &v
		} else if malformed {
			badNumbers++
		}
		if v, ok, malformed := numberAt(t, i, idx[ColLeverage]); ok {
			rec.Leverage = &v
		} else if malformed {
			badNumbers++
		}
		records[i] = rec
	}
	if badNumbers > 0 {
		res.warn(domain.WarnUnparseableNumericValues,
			"numeric cells (closedPnL, size, leverage) could not be parsed and were treated as missing", badNumbers)
	}
	res.Trades = records

	return t, nil
}

// resolveTimeColumn picks the trade time column: an explicit "time" column,
// then "timestamp", then the first column in header order matching any of
// rules.TimeColumns.
func resolveTimeColumn(t *table.Table, rules Rules) int {
	for _, name := range []string{"time", "timestamp"} {
		if idx := t.Index(name); idx >= 0 {
			return idx
		}
	}
	for i, c := range t.Columns {
		if contains(rules.TimeColumns, strings.ToLower(c)) {
			return i
		}
	}
	return -1
}

// parseTimeColumn converts a time column to instants. Numeric columns are epochs
// whose unit is decided by the column mean; other columns are parsed as text.
// Unparseable cells yield the zero time and are counted in bad; cells that are
// simply empty are not.
func parseTimeColumn(cells []string, msThreshold float64) (instants []time.Time, unit string, bad int) {
	instants = make([]time.Time, len(cells))

	if numeric, mean := epochColumn(cells); numeric {
		unit = UnitSeconds
		if mean > msThreshold {
			unit = UnitMilliseconds
		}
		for i, c := range cells {
			v, ok := parseNumber(c)
			if !ok {
				continue
			}
			if ts, ok := fromEpoch(v, unit); ok {
				instants[i] = ts
			} else {
				bad++
			}
		}
		return instants, unit, bad
	}

	for i, c := range cells {
		if ts, ok := parseTime(c); ok {
			instants[i] = ts
		} else if !isMissingToken(c) {
			bad++
		}
	}
	return instants, UnitText, bad
}

// resolveAliases renames raw trade columns to canonical names following rules
// and returns the index of every canonical column (-1 when absent). The time
// column is never claimed by an alias rule.
func resolveAliases(t *table.Table, rules Rules, timeIdx int, res *Result) map[string]int {
	idx := make(map[string]int, len(rules.Trades))
	claimed := map[int]bool{timeIdx: true}

	for _, rule := range rules.Trades {
		if i := t.ExactIndex(rule.Canonical); i >= 0 && !claimed[i] {
			idx[rule.Canonical] = i
			claimed[i] = true
			res.resolve("trades", rule.Canonical, rule.Canonical, domain.RuleCanonical)
			continue
		}

		found := -1
		for i, c := range t.Columns {
			if !claimed[i] && rules.matches(rule, c) {
				found = i
				break
			}
		}
		idx[rule.Canonical] = found
		if found < 0 {
			if rule.Canonical != ColClosedPnL {
				res.resolve("trades", rule.Canonical, "", domain.RuleMissing)
			}
			continue
		}
		claimed[found] = true
		res.resolve("trades", rule.Canonical, t.Columns[found], domain.RuleAlias)
		t.Columns[found] = rule.Canonical
	}
	return idx
}

// trimmedClone clones t with surrounding whitespace removed from column names.
func trimmedClone(t *table.Table) *table.Table {
	out := t.Clone()
	for i, c := range out.Columns {
		out.Columns[i] = strings.TrimSpace(c)
	}
	return out
}

func withConstantColumn(t *table.Table, name, value string) *table.Table {
	out := &table.Table{
		Columns: append(append([]string(nil), t.Columns...), name),
		Rows:    make([][]string, len(t.Rows)),
	}
	width := len(t.Columns)
	for i, r := range t.Rows {
		row := make([]string, width+1)
		copy(row, r)
		row[width] = value
		out.Rows[i] = row
	}
	return out
}

func cellAt(t *table.Table, row, col int) string {
	if col < 0 {
		return ""
	}
	return t.Cell(row, col)
}

// numberAt parses the cell at (row, col). malformed is true when the cell held
// something other than a missing marker but still failed to parse.
func numberAt(t *table.Table, row, col int) (v float64, ok, malformed bool) {
	if col < 0 {
		return 0, false, false
	}
	cell := t.Cell(row, col)
	if v, ok := parseNumber(cell); ok {
		return v, true, false
	}
	return 0, false, !isMissingToken(cell)
}
