package domain

import "time"

// TradeRecord is one normalized row of the trade log.
// Timestamp and Date are zero when the source time value was missing or unparseable.
type TradeRecord struct {
	Account   string    // trader identifier (account/user/address/wallet/trader)
	Symbol    string    // instrument identifier
	Timestamp time.Time // resolved instant, UTC
	Date      time.Time // Timestamp truncated to a UTC calendar day

	ClosedPnL float64  // realized PnL; 0.0 when the column was synthesized
	Size      *float64 // position size or notional (nullable)
	Leverage  *float64 // position leverage (nullable)
}

// Win reports whether the trade closed with strictly positive PnL.
func (t TradeRecord) Win() bool {
	return t.ClosedPnL > 0
}

// HasDate reports whether the trade carries a usable calendar day.
func (t TradeRecord) HasDate() bool {
	return !t.Date.IsZero()
}
