package pipeline

import (
	"context"
	"testing"
	"time"

	"sentiment-lab/internal/domain"
	"sentiment-lab/internal/normalization"
)

func TestCheckSufficiency_FixturesPass(t *testing.T) {
	sentiment, trades := FixtureTables()
	res, err := New(DefaultOptions()).Run(context.Background(), sentiment, trades)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.Sufficiency.Checks) != 4 {
		t.Fatalf("Expected 4 checks, got %d", len(res.Sufficiency.Checks))
	}
	for _, c := range res.Sufficiency.Checks {
		if !c.Pass {
			t.Errorf("Check %q failed: actual %s, threshold %s", c.Name, c.Actual, c.Threshold)
		}
	}
	if !res.Sufficiency.AllPass {
		t.Error("Expected AllPass to be true")
	}

	if got := res.Sufficiency.Checks[1].Actual; got != "95.8% (23/24)" {
		t.Errorf("Expected match rate 95.8%% (23/24), got %s", got)
	}
}

func TestCheckSufficiency_Failures(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	undated := domain.TradeRecord{Account: "0x1"}
	dated := domain.TradeRecord{Account: "0x2", Date: day}

	res := &Result{
		Normalized: &normalization.Result{
			Trades: []domain.TradeRecord{undated, undated, dated},
			Merged: []domain.JoinedRecord{
				{Trade: undated},
				{Trade: undated},
				{Trade: dated, Sentiment: &domain.SentimentRecord{Date: day, Classification: "Fear"}},
			},
		},
		Comparison: []domain.ClassificationStats{{Classification: "Fear", Rows: 1}},
		Segments:   []domain.TraderSegment{{Account: "0x2", TotalTrades: 1}},
		Clusters:   1,
	}

	got := CheckSufficiency(res, 3)
	if got.AllPass {
		t.Fatal("Expected AllPass to be false")
	}
	for i, c := range got.Checks {
		if c.Pass {
			t.Errorf("Check %d (%s) should fail, actual %s", i, c.Name, c.Actual)
		}
	}
	if got.Checks[2].Actual != "fear=true greed=false" {
		t.Errorf("Unexpected class check actual: %s", got.Checks[2].Actual)
	}
}

func TestCheckSufficiency_EmptyResult(t *testing.T) {
	got := CheckSufficiency(&Result{}, DefaultOptions().Segmentation.Clusters)

	if got.AllPass {
		t.Error("Expected empty result to fail")
	}
	if len(got.Checks) != 4 {
		t.Errorf("Expected 4 checks, got %d", len(got.Checks))
	}
	if got.Checks[0].Actual != "0.0% (0/0)" {
		t.Errorf("Unexpected dated check actual: %s", got.Checks[0].Actual)
	}
}
