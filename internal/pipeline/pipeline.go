// Package pipeline runs the full analysis over a pair of raw tables.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sentiment-lab/internal/domain"
	"sentiment-lab/internal/join"
	"sentiment-lab/internal/metrics"
	"sentiment-lab/internal/normalization"
	"sentiment-lab/internal/observability"
	"sentiment-lab/internal/recommend"
	"sentiment-lab/internal/segmentation"
	"sentiment-lab/internal/table"
	"sentiment-lab/pkg/logger"
)

// Stage names used in logs and metrics.
const (
	StageNormalize = "normalize"
	StageAggregate = "aggregate"
	StageCompare   = "compare"
	StageSegment   = "segment"
	StageRecommend = "recommend"
)

// Options configures the analysis.
type Options struct {
	Rules        normalization.Rules
	Segmentation segmentation.Options
	MaxLeverage  float64 // leverage profile cap; 0 uses metrics.DefaultMaxLeverage
}

// DefaultOptions returns the built-in analysis settings.
func DefaultOptions() Options {
	return Options{
		Rules:        normalization.DefaultRules(),
		Segmentation: segmentation.DefaultOptions(),
		MaxLeverage:  metrics.DefaultMaxLeverage,
	}
}

// Result is everything one run produces.
type Result struct {
	RunID       string
	GeneratedAt time.Time

	// Normalized holds the renamed tables and typed records.
	Normalized *normalization.Result

	Daily           []domain.TraderDailyMetric
	Comparison      []domain.ClassificationStats
	Segments        []domain.TraderSegment
	Profiles        []domain.ClusterProfile
	Clusters        int
	Recommendations []string

	Summary     domain.Summary
	Leverage    []domain.LeverageStats
	Quality     []TableQuality
	Sufficiency SufficiencyResult

	Warnings domain.Warnings
}

// Pipeline orchestrates normalization, aggregation, comparison, segmentation
// and recommendation. It holds no state between runs.
type Pipeline struct {
	opts    Options
	metrics *observability.Metrics
	logger  *logger.Logger
	clock   func() time.Time
	newID   func() string
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	if len(opts.Rules.Trades) == 0 {
		opts.Rules = normalization.DefaultRules()
	}
	return &Pipeline{
		opts:   opts,
		logger: logger.Nop(),
		clock:  func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
	}
}

// WithLogger sets the logger.
func (p *Pipeline) WithLogger(l *logger.Logger) *Pipeline {
	if l != nil {
		p.logger = l
	}
	return p
}

// WithMetrics sets the Prometheus metrics sink.
func (p *Pipeline) WithMetrics(m *observability.Metrics) *Pipeline {
	p.metrics = m
	return p
}

// WithClock sets a custom clock function for deterministic output.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	p.clock = clock
	return p
}

// WithIDGenerator sets the run ID generator for deterministic output.
func (p *Pipeline) WithIDGenerator(newID func() string) *Pipeline {
	p.newID = newID
	return p
}

// Run executes every stage. The only fatal data condition is a trade table
// without a time column (errors.Is(err, normalization.ErrSchema)); the
// context is checked between stages. Inputs are not modified.
func (p *Pipeline) Run(ctx context.Context, sentimentRaw, tradesRaw *table.Table) (*Result, error) {
	res := &Result{
		RunID:       p.newID(),
		GeneratedAt: p.clock(),
	}
	log := p.logger.With("run_id", res.RunID)

	res, err := p.run(ctx, res, log, sentimentRaw, tradesRaw)
	switch {
	case err == nil:
		p.metrics.RecordRun(observability.StatusSuccess, p.clock())
	case errors.Is(err, normalization.ErrSchema):
		p.metrics.RecordRun(observability.StatusSchemaError, p.clock())
		log.Errorw("run failed", "error", err)
	default:
		p.metrics.RecordRun(observability.StatusError, p.clock())
		log.Errorw("run failed", "error", err)
	}
	return res, err
}

func (p *Pipeline) run(ctx context.Context, res *Result, log *logger.Logger, sentimentRaw, tradesRaw *table.Table) (*Result, error) {
	res.Quality = []TableQuality{
		QualityReport("sentiment", sentimentRaw),
		QualityReport("trades", tradesRaw),
	}

	// 1. Normalize and join
	var norm *normalization.Result
	err := p.stage(ctx, log, StageNormalize, func() error {
		var err error
		norm, err = normalization.Normalize(sentimentRaw, tradesRaw, p.opts.Rules)
		if err != nil {
			return fmt.Errorf("normalize: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Normalized = norm
	res.Warnings = append(res.Warnings, norm.Warnings...)
	log.Debugw("schema resolved", "time_column", norm.TimeColumn, "time_unit", norm.TimeUnit,
		"trades", len(norm.Trades), "merged", len(norm.Merged), "match_rate", join.MatchRate(norm.Merged))

	// 2. Daily aggregates
	err = p.stage(ctx, log, StageAggregate, func() error {
		res.Daily = metrics.AggregateDaily(norm.Merged, metrics.DailyOptions{
			LeverageColumnPresent: norm.LeverageColumnPresent,
		})
		if n := metrics.Excluded(norm.Merged); n > 0 {
			res.Warnings = append(res.Warnings, domain.Warning{
				Code:    domain.WarnUnclassifiedRowsExcluded,
				Stage:   StageAggregate,
				Message: "merged rows without an account, date or sentiment class were left out of daily metrics",
				Count:   n,
			})
		}
		res.Summary = metrics.Summarize(norm.Trades, norm.Sentiment, norm.LeverageColumnPresent)
		res.Leverage = metrics.LeverageBySentiment(norm.Merged, p.opts.MaxLeverage)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Comparison
	err = p.stage(ctx, log, StageCompare, func() error {
		res.Comparison = metrics.CompareBySentiment(res.Daily)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Segmentation
	err = p.stage(ctx, log, StageSegment, func() error {
		seg, err := segmentation.Segment(norm.Trades, p.opts.Segmentation)
		if err != nil {
			return fmt.Errorf("segment: %w", err)
		}
		res.Segments = seg.Segments
		res.Profiles = seg.Profiles
		res.Clusters = seg.K
		res.Warnings = append(res.Warnings, seg.Warnings...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Recommendations
	err = p.stage(ctx, log, StageRecommend, func() error {
		res.Recommendations = recommend.FromComparison(res.Comparison)
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Sufficiency = CheckSufficiency(res, p.clusters())

	for _, w := range res.Warnings {
		p.metrics.RecordWarning(w.Code)
		log.Warnw("degraded data", "code", w.Code, "stage", w.Stage, "count", w.Count, "message", w.Message)
	}
	p.metrics.SetResultSize(len(norm.Merged), res.Clusters)
	log.Infow("run complete",
		"trades", len(norm.Trades),
		"daily_rows", len(res.Daily),
		"traders", len(res.Segments),
		"clusters", res.Clusters,
		"warnings", len(res.Warnings))

	return res, nil
}

// stage runs fn after checking ctx, and records its duration.
func (p *Pipeline) stage(ctx context.Context, log *logger.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	err := fn()
	p.metrics.ObserveStage(name, time.Since(start))
	log.Debugw("stage finished", "stage", name, "elapsed", time.Since(start))
	return err
}

func (p *Pipeline) clusters() int {
	if p.opts.Segmentation.Clusters > 0 {
		return p.opts.Segmentation.Clusters
	}
	return segmentation.DefaultClusters
}
