package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/dealsense/internal/api/handlers"
	"github.com/donaldgifford/dealsense/internal/store/mocks"
)

// stubPinger fails every ping, or blocks until the context ends when block is set.
type stubPinger struct {
	block bool
	calls atomic.Int32
}

func (p *stubPinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "returns 200 ok",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockStore := mocks.NewMockStore(t)
			h := handlers.NewHealthHandler(mockStore)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.Healthz(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "returns 200 when store ping succeeds",
			pingErr:    nil,
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready"}`,
		},
		{
			name:       "returns 503 when store ping fails",
			pingErr:    errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockStore := mocks.NewMockStore(t)
			mockStore.On("Ping", mock.Anything).Return(tt.pingErr)

			h := handlers.NewHealthHandler(mockStore)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.Readyz(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHealthz_IgnoresStoreOutage(t *testing.T) {
	t.Parallel()

	down := &stubPinger{}
	h := handlers.NewHealthHandler(down)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody), rec)

	require.NoError(t, h.Healthz(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, down.calls.Load(), "liveness must not ping postgres")
}

func TestReadyz_PingTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{name: "custom timeout", timeout: 20 * time.Millisecond, want: 20 * time.Millisecond},
		{name: "non-positive keeps default", timeout: 0, want: handlers.DefaultReadyTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var deadline time.Duration
			ms := mocks.NewMockStore(t)
			ms.On("Ping", mock.MatchedBy(func(ctx context.Context) bool {
				d, ok := ctx.Deadline()
				deadline = time.Until(d)
				return ok
			})).Return(nil).Once()

			h := handlers.NewHealthHandler(ms, handlers.WithReadyTimeout(tt.timeout))

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody), rec)

			require.NoError(t, h.Readyz(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.LessOrEqual(t, deadline, tt.want)
			assert.Greater(t, deadline, tt.want/2)
		})
	}
}

func TestReadyz_HungStoreReportsUnavailable(t *testing.T) {
	t.Parallel()

	hung := &stubPinger{block: true}
	h := handlers.NewHealthHandler(hung, handlers.WithReadyTimeout(10*time.Millisecond))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody), rec)

	start := time.Now()
	require.NoError(t, h.Readyz(c))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
	assert.Equal(t, int32(1), hung.calls.Load())
}
