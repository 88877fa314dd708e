package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "logs GET request with generated ID",
			method: http.MethodGet,
			path:   "/api/v1/profiles",
			status: http.StatusOK,
			wantLogFields: []string{
				"method=GET",
				"path=/api/v1/profiles",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "logs POST request",
			method: http.MethodPost,
			path:   "/api/v1/profiles",
			status: http.StatusCreated,
			wantLogFields: []string{
				"method=POST",
				"status=201",
			},
		},
		{
			name:          "uses provided request ID",
			method:        http.MethodGet,
			path:          "/test",
			status:        http.StatusOK,
			providedReqID: "custom-req-id-123",
			wantLogFields: []string{
				"request_id=custom-req-id-123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLog(logger)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			err := handler(c)
			require.NoError(t, err)

			logOutput := buf.String()
			for _, field := range tt.wantLogFields {
				assert.Contains(t, logOutput, field)
			}

			// Response should have the request ID header.
			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)

			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}

			// Context should have request_id.
			assert.NotEmpty(t, c.Get("request_id"))
		})
	}
}

func TestRequestLog_ProbeSuppression(t *testing.T) {
	t.Parallel()

	type call struct {
		path    string
		status  int
		logged  bool
		wantLvl string
	}

	tests := []struct {
		name  string
		calls []call
	}{
		{
			name: "repeated healthz success logged once",
			calls: []call{
				{path: "/healthz", status: http.StatusOK, logged: true, wantLvl: "level=INFO"},
				{path: "/healthz", status: http.StatusOK},
				{path: "/healthz", status: http.StatusOK},
			},
		},
		{
			name: "readyz failures always logged at warn",
			calls: []call{
				{path: "/readyz", status: http.StatusServiceUnavailable, logged: true, wantLvl: "level=WARN"},
				{path: "/readyz", status: http.StatusServiceUnavailable, logged: true, wantLvl: "level=WARN"},
			},
		},
		{
			name: "success after failure logged again",
			calls: []call{
				{path: "/readyz", status: http.StatusOK, logged: true},
				{path: "/readyz", status: http.StatusOK},
				{path: "/readyz", status: http.StatusServiceUnavailable, logged: true, wantLvl: "level=WARN"},
				{path: "/readyz", status: http.StatusOK, logged: true, wantLvl: "level=INFO"},
			},
		},
		{
			name: "api paths always logged",
			calls: []call{
				{path: "/api/v1/deals/hot", status: http.StatusOK, logged: true},
				{path: "/api/v1/deals/hot", status: http.StatusOK, logged: true},
				{path: "/api/v1/ingest", status: http.StatusInternalServerError, logged: true, wantLvl: "level=ERROR"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			mw := RequestLog(logger)

			for i, cl := range tt.calls {
				handler := mw(func(c echo.Context) error {
					return c.NoContent(cl.status)
				})

				before := buf.Len()
				req := httptest.NewRequest(http.MethodGet, cl.path, http.NoBody)
				rec := httptest.NewRecorder()
				require.NoError(t, handler(e.NewContext(req, rec)))

				line := buf.String()[before:]
				if !cl.logged {
					assert.Empty(t, line, "call %d should be suppressed", i)
					continue
				}
				assert.Contains(t, line, "path="+cl.path, "call %d", i)
				if cl.wantLvl != "" {
					assert.Contains(t, line, cl.wantLvl, "call %d", i)
				}
			}
		})
	}
}
