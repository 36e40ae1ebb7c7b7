package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-lookup/internal/services/metrics"
)

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.NewMetrics("test")

	r := gin.New()
	r.Use(m.HTTPMiddleware())
	r.GET("/api/weather", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/weather?city=x", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/weather", "4xx")))
}

func TestObserveLookupAndUpstream(t *testing.T) {
	m := metrics.NewMetrics("test")

	m.ObserveLookup("success")
	m.ObserveLookup("success")
	m.ObserveLookup("not_found")
	m.ObserveUpstream("api.open-meteo.com", http.StatusOK, 30*time.Millisecond)
	m.ObserveUpstream("api.open-meteo.com", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.UpstreamRequestsTotal.WithLabelValues("api.open-meteo.com", "transport_error")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := metrics.NewMetrics("test")
	col := metrics.NewPromCollector(m.Registerer(), "test")
	col.IncrementCounter("cache_get", "hit")
	col.ObserveLatency("cache_get", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_report_cache_operations_total{operation="get",result="hit"} 1`)
	assert.Contains(t, rec.Body.String(), `test_report_cache_operation_duration_seconds_count{operation="get"} 1`)
}

func TestPromCollector_Labels(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := metrics.NewPromCollector(reg, "test")

	col.IncrementCounter("cache_set", "error")
	col.IncrementCounter("cache_set")

	count, err := testutil.GatherAndCount(reg, "test_report_cache_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	body := `
# HELP test_report_cache_operations_total Cached lookup report reads (hit, miss, error) and writes (success, error)
# TYPE test_report_cache_operations_total counter
test_report_cache_operations_total{operation="set",result="error"} 1
test_report_cache_operations_total{operation="set",result="unknown"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(body), "test_report_cache_operations_total"))
}
