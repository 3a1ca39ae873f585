package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordFetch("mock", "historical", nil, time.Second)
	m.RecordCacheLookup(true)
	m.RecordSnapshot("month")
	m.RecordNotification(errors.New("boom"))
}

func TestRecordFetch(t *testing.T) {
	m := NewMetrics()
	m.RecordFetch("marketstack", "eod", nil, 10*time.Millisecond)
	m.RecordFetch("marketstack", "eod", errors.New("x"), 10*time.Millisecond)
	m.RecordFetch("marketstack", "eod", nil, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetchesTotal.WithLabelValues("marketstack", "eod", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchesTotal.WithLabelValues("marketstack", "eod", "error")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	r := gin.New()
	r.Use(m.MetricsMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quotechart_http_requests_total")
}
