// Package segmentation groups traders into behavioral clusters from their
// lifetime trading statistics.
package segmentation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"sentiment-lab/internal/domain"
)

// Defaults for Options.
const (
	DefaultClusters      = 3
	DefaultSeed          = 42
	DefaultMaxIterations = 300
	DefaultTolerance     = 1e-4
	DefaultRestarts      = 10
)

const stage = "segment"

// ErrInvalidOptions is returned for negative option values.
var ErrInvalidOptions = errors.New("invalid segmentation options")

// Options configures Segment. Zero fields take the package defaults, so a zero
// Seed means DefaultSeed.
type Options struct {
	Clusters      int
	Seed          int64
	MaxIterations int
	Tolerance     float64
	Restarts      int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Clusters:      DefaultClusters,
		Seed:          DefaultSeed,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Restarts:      DefaultRestarts,
	}
}

func (o Options) withDefaults() (Options, error) {
	if o.Clusters < 0 || o.MaxIterations < 0 || o.Tolerance < 0 || o.Restarts < 0 {
		return o, fmt.Errorf("%w: %+v", ErrInvalidOptions, o)
	}
	d := DefaultOptions()
	if o.Clusters == 0 {
		o.Clusters = d.Clusters
	}
	if o.Seed == 0 {
		o.Seed = d.Seed
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.Tolerance == 0 {
		o.Tolerance = d.Tolerance
	}
	if o.Restarts == 0 {
		o.Restarts = d.Restarts
	}
	return o, nil
}

// Result is the output of Segment.
type Result struct {
	Segments []domain.TraderSegment // sorted by account
	Profiles []domain.ClusterProfile
	K        int // clusters actually formed
	Warnings domain.Warnings
}

// Segment computes per-trader lifetime statistics from normalized trades and
// clusters traders on standardized (avg leverage, total trades, win rate).
//
// Zero traders is not an error: the result is empty. When fewer distinct
// traders or feature vectors exist than requested clusters, k is reduced and
// a cluster_count_reduced warning is attached.
func Segment(trades []domain.TradeRecord, opts Options) (*Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	res := &Result{}
	segments, skipped := lifetimeStats(trades)
	if skipped > 0 {
		res.Warnings = append(res.Warnings, domain.Warning{
			Code:    domain.WarnMissingAccountRows,
			Stage:   stage,
			Message: "trades without an account were left out of segmentation",
			Count:   skipped,
		})
	}
	if len(segments) == 0 {
		res.Segments = []domain.TraderSegment{}
		res.Profiles = []domain.ClusterProfile{}
		return res, nil
	}

	raw := make([][]float64, len(segments))
	for i, s := range segments {
		raw[i] = []float64{s.AvgLeverage, float64(s.TotalTrades), s.WinRate}
	}
	points := standardize(raw)

	k := opts.Clusters
	if distinct := countDistinct(points); distinct < k {
		res.Warnings = append(res.Warnings, domain.Warning{
			Code:  domain.WarnClusterCountReduced,
			Stage: stage,
			Message: fmt.Sprintf("requested %d clusters but only %d trader(s) with %d distinct feature vector(s)",
				opts.Clusters, len(segments), distinct),
			Count: distinct,
		})
		k = distinct
	}

	km := kmeans(points, kmeansConfig{
		k:             k,
		seed:          opts.Seed,
		maxIterations: opts.MaxIterations,
		tolerance:     opts.Tolerance,
		restarts:      opts.Restarts,
	})

	labels := relabel(km.labels)
	for i := range segments {
		segments[i].Cluster = labels[i]
	}

	res.Segments = segments
	res.K = k
	res.Profiles = Profile(segments)
	return res, nil
}

// lifetimeStats aggregates trades per account, sorted by account. Missing
// leverage counts as 0 in the mean. Trades without an account are skipped.
func lifetimeStats(trades []domain.TradeRecord) ([]domain.TraderSegment, int) {
	type acc struct {
		pnl          decimal.Decimal
		leverage     float64
		trades, wins int
	}
	byAccount := make(map[string]*acc)
	skipped := 0

	for _, t := range trades {
		if t.Account == "" {
			skipped++
			continue
		}
		a, ok := byAccount[t.Account]
		if !ok {
			a = &acc{}
			byAccount[t.Account] = a
		}
		a.pnl = a.pnl.Add(decimal.NewFromFloat(t.ClosedPnL))
		if t.Leverage != nil {
			a.leverage += *t.Leverage
		}
		a.trades++
		if t.Win() {
			a.wins++
		}
	}

	out := make([]domain.TraderSegment, 0, len(byAccount))
	for account, a := range byAccount {
		out = append(out, domain.TraderSegment{
			Account:     account,
			LifetimePnL: a.pnl.InexactFloat64(),
			AvgLeverage: a.leverage / float64(a.trades),
			TotalTrades: a.trades,
			WinRate:     float64(a.wins) / float64(a.trades),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out, skipped
}

func countDistinct(points [][]float64) int {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		seen[fmt.Sprint(p)] = struct{}{}
	}
	return len(seen)
}

// relabel renumbers cluster labels in order of first appearance so the first
// trader (by account) is always in cluster 0.
func relabel(labels []int) []int {
	mapping := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		m, ok := mapping[l]
		if !ok {
			m = len(mapping)
			mapping[l] = m
		}
		out[i] = m
	}
	return out
}
