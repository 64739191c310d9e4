package join

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiment-lab/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeft_KeepsEveryTrade(t *testing.T) {
	sentiment := []domain.SentimentRecord{
		{Date: day(2024, 1, 1), Classification: "Fear"},
		{Date: day(2024, 1, 2), Classification: "Greed"},
	}
	trades := []domain.TradeRecord{
		{Account: "A", Date: day(2024, 1, 1), ClosedPnL: -5},
		{Account: "A", Date: day(2024, 1, 3), ClosedPnL: 1}, // no sentiment that day
		{Account: "B"}, // unparseable time
		{Account: "B", Date: day(2024, 1, 2), ClosedPnL: 10},
	}

	merged := Left(trades, sentiment)

	require.Len(t, merged, len(trades))
	assert.Equal(t, "Fear", merged[0].Classification())
	assert.False(t, merged[1].Matched())
	assert.False(t, merged[2].Matched())
	assert.Equal(t, "Greed", merged[3].Classification())
	assert.Equal(t, trades[1], merged[1].Trade, "trade order and values preserved")
}

func TestLeft_FansOutOnDuplicateDays(t *testing.T) {
	sentiment := []domain.SentimentRecord{
		{Date: day(2024, 1, 1), Classification: "Fear"},
		{Date: day(2024, 1, 1), Classification: "Extreme Fear"},
	}
	trades := []domain.TradeRecord{
		{Account: "A", Date: day(2024, 1, 1)},
		{Account: "B", Date: day(2024, 1, 5)},
	}

	merged := Left(trades, sentiment)

	require.Len(t, merged, 3)
	assert.Equal(t, "Fear", merged[0].Classification())
	assert.Equal(t, "Extreme Fear", merged[1].Classification())
	assert.Equal(t, "B", merged[2].Trade.Account)
	assert.GreaterOrEqual(t, len(merged), len(trades))
}

func TestLeft_DoesNotShareSentimentPointers(t *testing.T) {
	sentiment := []domain.SentimentRecord{{Date: day(2024, 1, 1), Classification: "Fear"}}
	trades := []domain.TradeRecord{
		{Account: "A", Date: day(2024, 1, 1)},
		{Account: "B", Date: day(2024, 1, 1)},
	}

	merged := Left(trades, sentiment)
	merged[0].Sentiment.Classification = "mutated"

	assert.Equal(t, "Fear", merged[1].Classification())
	assert.Equal(t, "Fear", sentiment[0].Classification)
}

func TestLeft_Empty(t *testing.T) {
	assert.Empty(t, Left(nil, nil))
	assert.Len(t, Left([]domain.TradeRecord{{Account: "A"}}, nil), 1)
}

func TestDuplicateDates(t *testing.T) {
	sentiment := []domain.SentimentRecord{
		{Date: day(2024, 1, 3), Classification: "Fear"},
		{Date: day(2024, 1, 1), Classification: "Fear"},
		{Date: day(2024, 1, 3), Classification: "Greed"},
		{Date: day(2024, 1, 1), Classification: "Greed"},
		{Date: day(2024, 1, 2), Classification: "Greed"},
		{},
		{},
	}

	dups := DuplicateDates(sentiment)

	assert.Equal(t, []time.Time{day(2024, 1, 1), day(2024, 1, 3)}, dups)
}

func TestMatchRate(t *testing.T) {
	s := &domain.SentimentRecord{Classification: "Fear"}
	merged := []domain.JoinedRecord{{Sentiment: s}, {}, {Sentiment: s}, {}}

	assert.InDelta(t, 0.5, MatchRate(merged), 1e-12)
	assert.Equal(t, 0.0, MatchRate(nil))
}
