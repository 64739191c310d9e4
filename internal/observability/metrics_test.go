package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	finished := time.Unix(1700000000, 0)
	m.RecordRun(StatusSuccess, finished)
	m.RecordRun(StatusSuccess, finished)
	m.RecordRun(StatusSchemaError, finished)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PipelineRunsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SchemaFailures))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.LastSuccessfulPipeline))
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("", reg)

	m.RecordRows("trades", 10)
	m.RecordRows("trades", 5)
	m.RecordWarning("missing_pnl_column")
	m.SetResultSize(17, 3)
	m.RecordSourceLoad("file", time.Millisecond, nil)
	m.RecordSourceLoad("postgres", time.Millisecond, errors.New("boom"))
	m.ObserveStage("normalize", time.Millisecond)

	assert.Equal(t, 15.0, testutil.ToFloat64(m.RowsIngested.WithLabelValues("trades")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WarningsTotal.WithLabelValues("missing_pnl_column")))
	assert.Equal(t, 17.0, testutil.ToFloat64(m.RowsMerged))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ClustersFormed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SourceLoadErrors.WithLabelValues("postgres")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PipelineDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRun(StatusError, time.Now())
		m.RecordRows("trades", 1)
		m.RecordWarning("x")
		m.SetResultSize(1, 1)
		m.RecordSourceLoad("file", 0, nil)
		m.ObserveStage("x", 0)
	})
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)
	m.RecordRows("sentiment", 3)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `test_data_rows_ingested_total{table="sentiment"} 3`))
}
