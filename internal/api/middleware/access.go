package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// APIKeyHeader carries the shared API key.
const APIKeyHeader = "X-API-Key"

// apiOnly skips everything outside /api so probes and scrapes stay open.
func apiOnly(c echo.Context) bool {
	return !strings.HasPrefix(c.Request().URL.Path, "/api/")
}

func writeProblem(c echo.Context, status int, detail string) error {
	return c.JSON(status, problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

// CORS returns the CORS middleware for origins. An empty list allows every
// origin.
func CORS(origins []string) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			APIKeyHeader,
			requestIDHeader,
		},
		ExposeHeaders: []string{requestIDHeader},
	})
}

// APIKey returns middleware requiring key in the X-API-Key header on /api
// routes. An empty key disables the check.
func APIKey(key string) echo.MiddlewareFunc {
	return echomw.KeyAuthWithConfig(echomw.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			return key == "" || apiOnly(c)
		},
		KeyLookup: "header:" + APIKeyHeader,
		Validator: func(got string, _ echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1, nil
		},
		ErrorHandler: func(_ error, c echo.Context) error {
			return writeProblem(c, http.StatusUnauthorized, "missing or invalid API key")
		},
	})
}

// RateLimit returns middleware allowing each client IP max requests per
// window on /api routes.
func RateLimit(maxRequests int, window time.Duration) echo.MiddlewareFunc {
	perSecond := rate.Limit(float64(maxRequests) / window.Seconds())

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Skipper: apiOnly,
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      perSecond,
			Burst:     maxRequests,
			ExpiresIn: 2 * window,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return writeProblem(c, http.StatusForbidden, "client could not be identified")
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return writeProblem(c, http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}
