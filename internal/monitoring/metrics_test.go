package monitoring

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndependentRegistries(t *testing.T) {
	// Two instances must not collide on collector registration.
	a := NewMetrics()
	b := NewMetrics()
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestUptimeComputedAtScrape(t *testing.T) {
	m := NewMetrics()

	assert.Equal(t, 1, testutil.CollectAndCount(m.Uptime, "automation_uptime_seconds"))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.Uptime), float64(0))
}

func TestNewMetricsSpawnsNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		NewMetrics()
	}
	// Uptime is a GaugeFunc evaluated at scrape time; constructing instances
	// must not leave background tickers behind.
	assert.LessOrEqual(t, runtime.NumGoroutine(), before+1)
}

func TestRecordCommand(t *testing.T) {
	m := NewMetrics()

	m.RecordCommand("click", "ok", 5*time.Millisecond)
	m.RecordCommand("click", "ok", 7*time.Millisecond)
	m.RecordCommand("click", "element_not_found", time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CommandsTotal.WithLabelValues("click", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CommandsTotal.WithLabelValues("click", "element_not_found")))
}

func TestRecordCapture(t *testing.T) {
	m := NewMetrics()

	m.RecordCapture("ok")
	m.RecordCapture("transport_unavailable")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CapturesTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CapturesTotal.WithLabelValues("transport_unavailable")))
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/ping", "200")))
}
