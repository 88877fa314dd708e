// Package middleware provides Echo middleware for the dealsense API.
package middleware

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/dealsense/internal/metrics"
)

// UnmatchedRoute labels requests that hit no registered route.
const UnmatchedRoute = "unmatched"

// metricsSkipPaths are probe and scrape paths excluded from request metrics.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
	"/readyz":  {},
}

// healthGauges maps probe paths to the 0/1 gauge they update.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthStatus,
	"/readyz":  metrics.ReadyStatus,
}

var echoParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// RouteLabel converts an Echo route path to the OpenAPI template published
// in /openapi.json, so "/api/v1/profiles/:id/deals" becomes
// "/api/v1/profiles/{id}/deals".
func RouteLabel(route string) string {
	if route == "" || route == "/*" {
		return UnmatchedRoute
	}
	return echoParam.ReplaceAllString(route, "{$1}")
}

// Metrics returns Echo middleware that records request duration and status
// by route template. Requests the router could not match share one label.
// Probe paths only update their health gauge. A handler
// error is resolved through the Echo error handler first so the recorded
// status is the one the client receives.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, skip := metricsSkipPaths[c.Request().URL.Path]; skip {
				err := next(c)
				updateHealthGauge(c.Request().URL.Path, c.Response().Status)
				return err
			}

			start := time.Now()

			err := next(c)
			route := RouteLabel(c.Path())
			if errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
				route = UnmatchedRoute
			}
			if err != nil && !c.Response().Committed {
				c.Error(err)
				err = nil
			}

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, route, status).
				Observe(duration)
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, route, status).
				Inc()

			return err
		}
	}
}

// updateHealthGauge sets the gauge for a health path to 1 (success) or 0 (failure).
func updateHealthGauge(path string, status int) {
	gauge, ok := healthGauges[path]
	if !ok {
		return
	}

	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
