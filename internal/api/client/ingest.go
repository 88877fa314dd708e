package client

import (
	"context"

	"github.com/donaldgifford/dealsense/internal/engine"
)

// TriggerIngestion runs ingestion on the server and waits for the result.
func (c *Client) TriggerIngestion(ctx context.Context) (*engine.IngestionResult, error) {
	var res engine.IngestionResult
	if err := c.post(ctx, "/api/v1/ingest", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Seed loads the sample data set on the server.
func (c *Client) Seed(ctx context.Context) (*engine.SeedResult, error) {
	var res engine.SeedResult
	if err := c.post(ctx, "/api/v1/seed", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
