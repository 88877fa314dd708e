package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/dealsense/internal/engine"
)

// Ingester defines the interface for triggering ingestion.
type Ingester interface {
	RunIngestion(ctx context.Context) (*engine.IngestionResult, error)
}

// Seeder defines the interface for loading sample data.
type Seeder interface {
	Seed(ctx context.Context) (*engine.SeedResult, error)
}

// IngestHandler handles manual ingestion and seed requests.
type IngestHandler struct {
	ingester Ingester
	seeder   Seeder
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ing Ingester, seeder Seeder) *IngestHandler {
	return &IngestHandler{ingester: ing, seeder: seeder}
}

// IngestOutput is the response body for the ingest endpoint.
type IngestOutput struct {
	Body struct {
		Status string `json:"status" example:"ingestion completed" doc:"Ingestion status"`
		engine.IngestionResult
	}
}

// SeedOutput is the response body for the seed endpoint.
type SeedOutput struct {
	Body engine.SeedResult
}

// Ingest runs every configured source once.
func (h *IngestHandler) Ingest(ctx context.Context, _ *struct{}) (*IngestOutput, error) {
	res, err := h.ingester.RunIngestion(ctx)
	if err != nil {
		return nil, engineError("ingestion", err)
	}

	resp := &IngestOutput{}
	resp.Body.Status = "ingestion completed"
	resp.Body.IngestionResult = *res
	return resp, nil
}

// Seed loads the sample catalogue into an empty database.
func (h *IngestHandler) Seed(ctx context.Context, _ *struct{}) (*SeedOutput, error) {
	res, err := h.seeder.Seed(ctx)
	if err != nil {
		return nil, engineError("seed", err)
	}
	return &SeedOutput{Body: *res}, nil
}

// RegisterIngestRoutes registers ingestion endpoints with the Huma API.
func RegisterIngestRoutes(api huma.API, h *IngestHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-ingest",
		Method:      http.MethodPost,
		Path:        "/api/v1/ingest",
		Summary:     "Trigger manual ingestion",
		Description: "Fetches candidates from every enabled source, stores new deals, " +
			"and raises alerts for matching profiles.",
		Tags:   []string{"ingest"},
		Errors: []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.Ingest)

	huma.Register(api, huma.Operation{
		OperationID: "seed-sample-data",
		Method:      http.MethodPost,
		Path:        "/api/v1/seed",
		Summary:     "Load sample data",
		Description: "Inserts the sample deals and profiles when both tables are empty.",
		Tags:        []string{"ingest"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Seed)
}
