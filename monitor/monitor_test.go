package monitor

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMetricsCountSummaries(t *testing.T) {
	m := NewMetrics()
	m.ObserveSummary("zone", "summary", 2*time.Second)
	m.ObserveSummary("zone", "degraded", time.Second)
	m.ObserveSummary("zone", "summary", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.summaries.WithLabelValues("zone", "summary")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.summaries.WithLabelValues("zone", "degraded")))

	m.ObserveRequest("GET", "/api/v1/zones", "200", time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/zones", "200")))
}

func TestMetricsRoute(t *testing.T) {
	m := NewMetrics()
	m.ObserveSummary("department", "no_data", 0)

	r := gin.New()
	RegisterMetricsRoute(r, m)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `pmo_summaries_total{outcome="no_data",scope="department"} 1`)
}

func TestLogsRouteRequiresToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	require.NoError(t, os.WriteFile(path, []byte("line one\n"), 0o644))

	r := gin.New()
	RegisterLogsRoute(r, "s3cret", path)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs?token=wrong", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs?token=s3cret", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "line one\n", w.Body.String())

	disabled := gin.New()
	RegisterLogsRoute(disabled, "", path)
	w = httptest.NewRecorder()
	disabled.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs?token=", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
