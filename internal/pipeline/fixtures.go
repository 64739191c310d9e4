package pipeline

import (
	"context"

	"sentiment-lab/internal/storage/memory"
	"sentiment-lab/internal/table"
)

// Fixture table names, matching the usual dataset file names.
const (
	FixtureSentimentTable = "fear_greed_index"
	FixtureTradesTable    = "historical_data"
)

// LoadFixtures populates store with a small demonstration dataset.
func LoadFixtures(ctx context.Context, store *memory.TableStore) error {
	sentiment, trades := FixtureTables()

	if err := store.Put(ctx, FixtureSentimentTable, sentiment); err != nil {
		return err
	}
	return store.Put(ctx, FixtureTradesTable, trades)
}

// FixtureTables returns the demonstration sentiment and trade tables.
//
// Four traders over 2024-01-01..07. Days 1-3 are Fear, days 4-6 Greed; day 7
// has no sentiment record. The trade table uses exchange-export headers so the
// alias rules are exercised; one trade has no leverage value.
func FixtureTables() (sentiment, trades *table.Table) {
	sentiment = table.New(
		[]string{"timestamp", "value", "classification", "date"},
		[][]string{
			{"1704067200", "28", "Fear", "2024-01-01"},
			{"1704153600", "22", "Fear", "2024-01-02"},
			{"1704240000", "31", "Fear", "2024-01-03"},
			{"1704326400", "61", "Greed", "2024-01-04"},
			{"1704412800", "68", "Greed", "2024-01-05"},
			{"1704499200", "72", "Greed", "2024-01-06"},
		},
	)

	trades = table.New(
		[]string{"Account", "Coin", "Execution Price", "Size USD", "Side", "Timestamp IST", "Closed PnL", "Leverage", "Timestamp"},
		[][]string{
			{"0xa1", "BTC", "42100.5", "1200", "BUY", "01-01-2024 14:30", "12.5", "2", "1704099600000"},
			{"0xa1", "BTC", "42350", "1150", "SELL", "02-01-2024 15:30", "-3.25", "2", "1704189600000"},
			{"0xa1", "ETH", "2290.1", "800", "BUY", "03-01-2024 19:30", "4", "2", "1704290400000"},
			{"0xa1", "ETH", "2410", "900", "SELL", "04-01-2024 16:30", "18.75", "3", "1704366000000"},
			{"0xa1", "BTC", "44900", "1300", "BUY", "05-01-2024 14:30", "22", "3", "1704445200000"},
			{"0xa1", "SOL", "98.4", "400", "SELL", "06-01-2024 21:30", "6.5", "2", "1704556800000"},
			{"0xb2", "SOL", "101.2", "15000", "BUY", "01-01-2024 06:30", "-420", "40", "1704070800000"},
			{"0xb2", "SOL", "99.8", "14000", "SELL", "02-01-2024 07:30", "-380.5", "45", "1704160800000"},
			{"0xb2", "DOGE", "0.089", "9000", "BUY", "03-01-2024 08:30", "150", "40", "1704250800000"},
			{"0xb2", "SOL", "104.5", "20000", "BUY", "04-01-2024 09:30", "910", "50", "1704340800000"},
			{"0xb2", "SOL", "108", "22000", "SELL", "05-01-2024 10:30", "1250", "50", "1704430800000"},
			{"0xb2", "DOGE", "0.094", "8000", "SELL", "06-01-2024 11:30", "-95", "35", "1704520800000"},
			{"0xc3", "ETH", "2280", "5000", "BUY", "01-01-2024 17:30", "30", "5", "1704110400000"},
			{"0xc3", "ETH", "2301", "5200", "SELL", "01-01-2024 18:30", "0", "5", "1704114000000"},
			{"0xc3", "BTC", "42020", "6100", "BUY", "02-01-2024 17:30", "-45", "5", "1704196800000"},
			{"0xc3", "BTC", "42500", "6000", "SELL", "02-01-2024 20:30", "60", "5", "1704207600000"},
			{"0xc3", "ETH", "2330", "5100", "BUY", "03-01-2024 17:30", "25", "5", "1704283200000"},
			{"0xc3", "ETH", "2405", "5500", "SELL", "04-01-2024 17:30", "80", "5", "1704369600000"},
			{"0xc3", "BTC", "44800", "6400", "BUY", "05-01-2024 17:30", "110", "6", "1704456000000"},
			{"0xc3", "BTC", "45100", "6600", "SELL", "05-01-2024 23:30", "-20", "6", "1704477600000"},
			{"0xc3", "ETH", "2500", "5600", "BUY", "06-01-2024 17:30", "70", "", "1704542400000"},
			{"0xd4", "BTC", "42200", "700", "BUY", "04-01-2024 01:30", "-15", "10", "1704312000000"},
			{"0xd4", "BTC", "44950", "750", "SELL", "07-01-2024 01:30", "35", "10", "1704571200000"},
			{"0xd4", "ETH", "2520", "650", "SELL", "08-01-2024 01:30", "12", "10", "1704657600000"},
		},
	)
	return sentiment, trades
}
