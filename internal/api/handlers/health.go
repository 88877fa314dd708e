package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DefaultReadyTimeout bounds the datastore ping behind /readyz.
const DefaultReadyTimeout = 2 * time.Second

// Pinger reports whether the datastore is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	store   Pinger
	timeout time.Duration
}

// HealthOption configures the HealthHandler.
type HealthOption func(*HealthHandler)

// WithReadyTimeout overrides how long /readyz waits for the datastore.
func WithReadyTimeout(d time.Duration) HealthOption {
	return func(h *HealthHandler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s Pinger, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{store: s, timeout: DefaultReadyTimeout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Healthz returns 200 if the process is running. It never touches the store.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the database answers a ping within the ready
// timeout, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
