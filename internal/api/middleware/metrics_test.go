package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/donaldgifford/dealsense/internal/api/middleware"
	"github.com/donaldgifford/dealsense/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		route      string
		target     string
		handler    echo.HandlerFunc
		wantStatus int
		wantLabel  string
	}{
		{
			name:   "records 200 by route template",
			method: http.MethodGet,
			route:  "/api/v1/deals/:id",
			target: "/api/v1/deals/d_0001",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"deal_id": c.Param("id")})
			},
			wantStatus: http.StatusOK,
			wantLabel:  "/api/v1/deals/{id}",
		},
		{
			name:   "records 404 response",
			method: http.MethodGet,
			route:  "/api/v1/profiles/:id/deals",
			target: "/api/v1/profiles/p_missing/deals",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantLabel:  "/api/v1/profiles/{id}/deals",
		},
		{
			name:   "records status of returned error",
			method: http.MethodPost,
			route:  "/api/v1/profiles/:id/alerts/:alert_id/ack",
			target: "/api/v1/profiles/p_1/alerts/a_9/ack",
			handler: func(echo.Context) error {
				return echo.NewHTTPError(http.StatusConflict, "alert already acknowledged")
			},
			wantStatus: http.StatusConflict,
			wantLabel:  "/api/v1/profiles/{id}/alerts/{alert_id}/ack",
		},
		{
			name:   "records POST request",
			method: http.MethodPost,
			route:  "/api/v1/ingest",
			target: "/api/v1/ingest",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusAccepted)
			},
			wantStatus: http.StatusAccepted,
			wantLabel:  "/api/v1/ingest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics())
			e.Add(tt.method, tt.route, tt.handler)

			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			statusStr := strconv.Itoa(tt.wantStatus)

			counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
				tt.method, tt.wantLabel, statusStr,
			)
			require.NoError(t, err)

			m := &io_prometheus_client.Metric{}
			require.NoError(t, counter.Write(m))
			assert.Greater(t, m.GetCounter().GetValue(), float64(0))

			observer, err := metrics.HTTPRequestDuration.GetMetricWithLabelValues(
				tt.method, tt.wantLabel, statusStr,
			)
			require.NoError(t, err)

			hm := &io_prometheus_client.Metric{}
			require.NoError(t, observer.(prometheus.Metric).Write(hm))
			assert.Positive(t, hm.GetHistogram().GetSampleCount())
		})
	}
}

func TestRouteLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		route string
		want  string
	}{
		{route: "/api/v1/profiles/:id/deals", want: "/api/v1/profiles/{id}/deals"},
		{route: "/api/v1/deals/hot", want: "/api/v1/deals/hot"},
		{route: "/api/v1/profiles/:id/alerts/:alert_id/ack", want: "/api/v1/profiles/{id}/alerts/{alert_id}/ack"},
		{route: "", want: mw.UnmatchedRoute},
		{route: "/*", want: mw.UnmatchedRoute},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mw.RouteLabel(tt.route))
		})
	}
}

func TestMetricsMiddleware_UnknownPathsShareLabel(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics())
	e.GET("/api/v1/deals/hot", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, mw.UnmatchedRoute, "404"))

	for _, path := range []string{"/wp-login.php", "/api/v1/nope/1", "/api/v1/nope/2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		require.Equal(t, http.StatusNotFound, rec.Code, path)
	}

	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, mw.UnmatchedRoute, "404"))
	assert.InDelta(t, 3.0, after-before, 0)
	assert.InDelta(t, 0.0,
		testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/wp-login.php", "404")), 0)
}

func TestMetricsMiddleware_HealthGauges(t *testing.T) {
	ready := http.StatusOK

	e := echo.New()
	e.Use(mw.Metrics())
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/readyz", func(c echo.Context) error { return c.NoContent(ready) })

	serve := func(path string) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	serve("/healthz")
	serve("/readyz")
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.HealthStatus), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ReadyStatus), 0)

	ready = http.StatusServiceUnavailable
	serve("/readyz")
	assert.InDelta(t, 0.0, testutil.ToFloat64(metrics.ReadyStatus), 0)

	assert.InDelta(t, 0.0,
		testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/readyz", "503")), 0,
		"probe paths should not be counted as requests")
}
