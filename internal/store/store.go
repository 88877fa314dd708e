// Package store defines the datastore abstraction for dealsense.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// ErrNotFound is returned when a deal or profile does not exist.
var ErrNotFound = errors.New("not found")

// DealQuery defines optional filters for deal listing queries.
type DealQuery struct {
	Since   *time.Time // only deals posted at or after Since
	Source  *string
	Limit   int // default 50
	Offset  int
	OrderBy string // "popularity", "discount", "posted_at"
}

// Store defines all data access operations for dealsense.
type Store interface {
	// Deals
	InsertDeal(ctx context.Context, d *domain.Deal) (inserted bool, err error)
	UpsertDeal(ctx context.Context, d *domain.Deal) error
	GetDeal(ctx context.Context, id string) (*domain.Deal, error)
	ListDeals(ctx context.Context, q *DealQuery) ([]domain.Deal, int, error)
	ListAllDeals(ctx context.Context) ([]domain.Deal, error)
	CountDeals(ctx context.Context) (int, error)

	// Profiles
	UpsertProfile(ctx context.Context, p *domain.Profile) error
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
	CountProfiles(ctx context.Context) (int, error)

	// Alerts
	CreateAlert(ctx context.Context, a *domain.Alert) error
	ListPendingAlerts(ctx context.Context) ([]domain.Alert, error)
	MarkAlertsNotified(ctx context.Context, ids []string) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
