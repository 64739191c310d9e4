package normalization

import "strings"

// Canonical trade column names.
const (
	ColAccount   = "account"
	ColSymbol    = "symbol"
	ColClosedPnL = "closedPnL"
	ColLeverage  = "leverage"
	ColSize      = "size"
	ColDate      = "date"

	ColSentimentDate  = "Date"
	ColClassification = "Classification"
)

// AliasRule maps a canonical column to the raw names it may arrive under.
// Aliases are compared lower-cased.
type AliasRule struct {
	Canonical string
	Aliases   []string
}

// Rules drive schema resolution. They are plain data so callers can extend
// alias lists without touching the resolution code.
type Rules struct {
	// TimeColumns are the time-bearing trade columns tried after the explicit
	// "time" and "timestamp" columns.
	TimeColumns []string

	// MillisecondThreshold separates epoch seconds from epoch milliseconds by
	// the mean of a numeric time column.
	MillisecondThreshold float64

	// Trades is applied in order; the first raw column matching a rule is renamed.
	Trades []AliasRule
}

// DefaultRules returns the built-in resolution rules.
func DefaultRules() Rules {
	return Rules{
		TimeColumns:          []string{"time", "timestamp", "date", "created_time"},
		MillisecondThreshold: 1e10,
		Trades: []AliasRule{
			{Canonical: ColAccount, Aliases: []string{"account", "user", "address", "wallet", "trader"}},
			{Canonical: ColSymbol, Aliases: []string{"symbol", "pair", "ticker", "coin"}},
			{Canonical: ColClosedPnL, Aliases: []string{
				"closedpnl", "pnl", "profit", "realized_pnl", "closed_pnl",
				"realizedpnl", "closed pnl", "realized pnl",
			}},
			{Canonical: ColLeverage, Aliases: []string{"leverage", "lev"}},
			{Canonical: ColSize, Aliases: []string{"size", "amount", "quantity", "position_size", "size tokens", "size usd"}},
		},
	}
}

// WithAliases returns a copy of r with extra aliases appended to the named
// canonical columns. Unknown canonical names are ignored.
func (r Rules) WithAliases(extra map[string][]string) Rules {
	out := r
	out.TimeColumns = append([]string(nil), r.TimeColumns...)
	out.Trades = make([]AliasRule, len(r.Trades))
	for i, rule := range r.Trades {
		aliases := append([]string(nil), rule.Aliases...)
		for canonical, more := range extra {
			if !strings.EqualFold(canonical, rule.Canonical) {
				continue
			}
			for _, a := range more {
				a = strings.ToLower(strings.TrimSpace(a))
				if a != "" && !contains(aliases, a) {
					aliases = append(aliases, a)
				}
			}
		}
		out.Trades[i] = AliasRule{Canonical: rule.Canonical, Aliases: aliases}
	}
	if more, ok := extra[ColDate]; ok {
		for _, a := range more {
			a = strings.ToLower(strings.TrimSpace(a))
			if a != "" && !contains(out.TimeColumns, a) {
				out.TimeColumns = append(out.TimeColumns, a)
			}
		}
	}
	return out
}

func (r Rules) matches(rule AliasRule, column string) bool {
	lc := strings.ToLower(column)
	if lc == strings.ToLower(rule.Canonical) {
		return true
	}
	return contains(rule.Aliases, lc)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
