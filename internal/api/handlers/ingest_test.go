package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/dealsense/internal/api/handlers"
	"github.com/donaldgifford/dealsense/internal/engine"
)

func TestIngest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		result     *engine.IngestionResult
		err        error
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "success reports counts",
			result:     &engine.IngestionResult{Fetched: 12, Inserted: 9, Duplicates: 2, Invalid: 1, Alerts: 3},
			wantStatus: http.StatusOK,
			wantBody:   []string{"ingestion completed", `"inserted":9`, `"alerts":3`},
		},
		{
			name:       "run already in progress",
			err:        engine.ErrIngestionRunning,
			wantStatus: http.StatusConflict,
			wantBody:   []string{"ingestion already running"},
		},
		{
			name:       "store failure",
			err:        errors.New("database down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"ingestion failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			f := &fakeEngine{
				ingest: func() (*engine.IngestionResult, error) {
					called = true
					return tt.result, tt.err
				},
			}

			_, api := humatest.New(t)
			handlers.RegisterIngestRoutes(api, handlers.NewIngestHandler(f, f))

			resp := api.Post("/api/v1/ingest")
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			assert.True(t, called)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()

	f := &fakeEngine{
		seed: func() (*engine.SeedResult, error) {
			return &engine.SeedResult{Deals: 37, Profiles: 2}, nil
		},
	}

	_, api := humatest.New(t)
	handlers.RegisterIngestRoutes(api, handlers.NewIngestHandler(f, f))

	resp := api.Post("/api/v1/seed")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"deals":37`)
	assert.Contains(t, resp.Body.String(), `"skipped":false`)
}
