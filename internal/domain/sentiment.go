package domain

import "time"

// Well-known sentiment labels. Other labels (e.g. "Extreme Fear") pass through untouched.
const (
	ClassificationFear  = "Fear"
	ClassificationGreed = "Greed"
)

// SentimentRecord is one day of the market-sentiment series.
type SentimentRecord struct {
	Date           time.Time // UTC calendar day; zero when unparseable
	Classification string    // empty when the dataset has no classification column
}

// HasDate reports whether the record carries a usable calendar day.
func (s SentimentRecord) HasDate() bool {
	return !s.Date.IsZero()
}

// JoinedRecord is a trade left-joined to the sentiment of its day.
// Sentiment is nil when no sentiment record exists for the trade's date.
type JoinedRecord struct {
	Trade     TradeRecord
	Sentiment *SentimentRecord
}

// Classification returns the joined sentiment label, or "" when unmatched.
func (j JoinedRecord) Classification() string {
	if j.Sentiment == nil {
		return ""
	}
	return j.Sentiment.Classification
}

// Matched reports whether the trade found a sentiment record.
func (j JoinedRecord) Matched() bool {
	return j.Sentiment != nil
}
