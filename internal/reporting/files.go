package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"sentiment-lab/internal/domain"
)

// Output file names written by WriteFiles.
const (
	ReportFile        = "REPORT.md"
	DailyMetricsFile  = "daily_metrics.csv"
	ComparisonFile    = "sentiment_comparison.csv"
	TraderSegmentFile = "trader_segments.csv"
	ReportJSONFile    = "report.json"
)

// WriteFiles writes the report bundle into dir, creating it if needed:
// - REPORT.md
// - report.json
// - daily_metrics.csv
// - sentiment_comparison.csv
// - trader_segments.csv
func WriteFiles(dir string, r *Report, daily []domain.TraderDailyMetric) error {
	// Ensure output directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	js, err := RenderJSON(r)
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	dailyCSV, err := RenderDailyCSV(daily)
	if err != nil {
		return fmt.Errorf("render daily csv: %w", err)
	}
	compCSV, err := RenderComparisonCSV(r.Comparison)
	if err != nil {
		return fmt.Errorf("render comparison csv: %w", err)
	}
	segCSV, err := RenderSegmentsCSV(r.Segments)
	if err != nil {
		return fmt.Errorf("render segments csv: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{ReportFile, []byte(RenderMarkdown(r))},
		{ReportJSONFile, js},
		{DailyMetricsFile, []byte(dailyCSV)},
		{ComparisonFile, []byte(compCSV)},
		{TraderSegmentFile, []byte(segCSV)},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), f.data, 0644); err != nil {
			return err
		}
	}
	return nil
}
