// Package handlers implements HTTP handlers for the dealsense API.
package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/dealsense/internal/engine"
)

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// engineError maps engine sentinels onto HTTP problem responses. The
// wrapped message carries the missing id or offending field.
func engineError(op string, err error) error {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, engine.ErrInvalidInput):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, engine.ErrIngestionRunning):
		return huma.Error409Conflict(err.Error())
	default:
		return huma.Error500InternalServerError(op + " failed: " + err.Error())
	}
}
