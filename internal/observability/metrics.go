// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "sentiment_lab"

// Run statuses.
const (
	StatusSuccess     = "success"
	StatusSchemaError = "schema_error"
	StatusError       = "error"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  *prometheus.HistogramVec
	SchemaFailures    prometheus.Counter
	WarningsTotal     *prometheus.CounterVec

	// Data metrics
	RowsIngested   *prometheus.CounterVec
	RowsMerged     prometheus.Gauge
	ClustersFormed prometheus.Gauge

	// Source metrics
	SourceLoadDuration *prometheus.HistogramVec
	SourceLoadErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulPipeline prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered against reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Pipeline metrics
		PipelineRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"status"}),
		PipelineDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
		}, []string{"stage"}),
		SchemaFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "schema_failures_total",
			Help:      "Total number of runs rejected because the trade table had no time column",
		}),
		WarningsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "warnings_total",
			Help:      "Total number of degraded-data warnings by code",
		}, []string{"code"}),

		// Data metrics
		RowsIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "rows_ingested_total",
			Help:      "Total number of raw rows read per table",
		}, []string{"table"}),
		RowsMerged: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "rows_merged",
			Help:      "Rows in the merged table of the last run",
		}),
		ClustersFormed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "clusters_formed",
			Help:      "Trader clusters formed in the last run",
		}),

		// Source metrics
		SourceLoadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "load_duration_seconds",
			Help:      "Duration of raw table loads",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"kind"}),
		SourceLoadErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "load_errors_total",
			Help:      "Total number of failed raw table loads",
		}, []string{"kind"}),

		// Health metrics
		LastSuccessfulPipeline: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_pipeline_timestamp",
			Help:      "Unix timestamp of last successful pipeline run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint serving g.
// A nil g serves the default gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordRun records the outcome of a pipeline run.
func (m *Metrics) RecordRun(status string, finished time.Time) {
	if m == nil {
		return
	}
	m.PipelineRunsTotal.WithLabelValues(status).Inc()
	switch status {
	case StatusSuccess:
		m.LastSuccessfulPipeline.Set(float64(finished.Unix()))
	case StatusSchemaError:
		m.SchemaFailures.Inc()
	}
}

// ObserveStage records how long a pipeline stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.PipelineDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRows adds rows read for a table.
func (m *Metrics) RecordRows(table string, rows int) {
	if m == nil {
		return
	}
	m.RowsIngested.WithLabelValues(table).Add(float64(rows))
}

// RecordWarning counts one warning by code.
func (m *Metrics) RecordWarning(code string) {
	if m == nil {
		return
	}
	m.WarningsTotal.WithLabelValues(code).Inc()
}

// SetResultSize records the merged row count and cluster count of a run.
func (m *Metrics) SetResultSize(merged, clusters int) {
	if m == nil {
		return
	}
	m.RowsMerged.Set(float64(merged))
	m.ClustersFormed.Set(float64(clusters))
}

// RecordSourceLoad records a raw table load.
func (m *Metrics) RecordSourceLoad(kind string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.SourceLoadDuration.WithLabelValues(kind).Observe(d.Seconds())
	if err != nil {
		m.SourceLoadErrors.WithLabelValues(kind).Inc()
	}
}
