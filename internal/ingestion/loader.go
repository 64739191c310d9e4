package ingestion

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"sentiment-lab/internal/observability"
	"sentiment-lab/internal/table"
	"sentiment-lab/pkg/logger"
)

// Loader fetches the raw sentiment and trade tables.
type Loader struct {
	metrics *observability.Metrics
	logger  *logger.Logger
	clock   func() time.Time
}

// NewLoader creates a loader. metrics may be nil.
func NewLoader(metrics *observability.Metrics, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		metrics: metrics,
		logger:  log,
		clock:   time.Now,
	}
}

// LoadPair loads both tables concurrently. The first failure cancels the other load.
func (l *Loader) LoadPair(ctx context.Context, sentimentSrc, tradesSrc Source) (sentiment, trades *table.Table, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := l.load(gctx, "sentiment", sentimentSrc)
		sentiment = t
		return err
	})
	g.Go(func() error {
		t, err := l.load(gctx, "trades", tradesSrc)
		trades = t
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sentiment, trades, nil
}

func (l *Loader) load(ctx context.Context, role string, src Source) (*table.Table, error) {
	if src == nil {
		return nil, fmt.Errorf("load %s: no source configured", role)
	}

	start := l.clock()
	t, err := src.Load(ctx)
	l.metrics.RecordSourceLoad(src.Kind(), l.clock().Sub(start), err)
	if err != nil {
		return nil, fmt.Errorf("load %s from %s: %w", role, src, err)
	}

	l.metrics.RecordRows(role, t.Len())
	l.logger.Debugw("loaded table", "role", role, "source", src.String(), "rows", t.Len(), "columns", len(t.Columns))
	return t, nil
}

// LoadPair loads both tables concurrently without metrics or logging.
func LoadPair(ctx context.Context, sentimentSrc, tradesSrc Source) (*table.Table, *table.Table, error) {
	return NewLoader(nil, nil).LoadPair(ctx, sentimentSrc, tradesSrc)
}
