// Package ingest collects raw deal candidates from external feeds and
// converts them into stored deals.
package ingest

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// Source fetches raw deal candidates from one external feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Candidate, error)
}

// Candidate is a raw deal as delivered by a source, before normalization.
type Candidate struct {
	Title         string        `json:"title"                    validate:"required"`
	PriceCurrent  int64         `json:"price_current"            validate:"gte=0"`
	PriceOriginal *int64        `json:"price_original,omitempty" validate:"omitempty,gte=0"`
	Source        domain.Source `json:"source"                   validate:"omitempty,oneof=community shop manual"`
	Merchant      string        `json:"merchant"`
	URL           string        `json:"url"                      validate:"omitempty,url"`
	Category      string        `json:"category"`
	PostedAt      time.Time     `json:"posted_at"`
	Popularity    *float64      `json:"popularity,omitempty"     validate:"omitempty,gte=0,lte=1"`
	Extra         *domain.Extra `json:"extra,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks c against its field constraints.
func (c *Candidate) Validate() error {
	return validate.Struct(c)
}
