package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/infrastructure/metrics"
)

func TestPrometheus_RecordsExcluded(t *testing.T) {
	p := metrics.NewPrometheus()
	p.RecordsExcluded("curva_abc", "net_above_gross", 2)
	p.RecordsExcluded("curva_abc", "net_above_gross", 1)
	p.RecordsExcluded("margem_por_canal", "missing_cost_attribution", 4)

	expected := `
# HELP analytics_records_excluded_total Registros malformados o sin costo omitidos por reporte y motivo.
# TYPE analytics_records_excluded_total counter
analytics_records_excluded_total{reason="missing_cost_attribution",report="margem_por_canal"} 4
analytics_records_excluded_total{reason="net_above_gross",report="curva_abc"} 3
`
	require.NoError(t, testutil.GatherAndCompare(p.Registry(), strings.NewReader(expected), metrics.MetricRecordsExcludedTotal))
}

func TestPrometheus_CacheLookupYDuracion(t *testing.T) {
	p := metrics.NewPrometheus()
	p.CacheLookup("resumo_financeiro", true)
	p.CacheLookup("resumo_financeiro", false)
	p.CacheLookup("resumo_financeiro", false)
	p.ReportDuration("resumo_financeiro", 150*time.Millisecond)

	n, err := testutil.GatherAndCount(p.Registry(), metrics.MetricCacheLookupsTotal)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por resultado")

	n, err = testutil.GatherAndCount(p.Registry(), metrics.MetricReportDurationSeconds)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPrometheus_Handler(t *testing.T) {
	p := metrics.NewPrometheus()
	p.HTTPRequest("GET", "/api/analytics/curva-abc", 200, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/analytics/curva-abc",status="200"} 1`)
}
