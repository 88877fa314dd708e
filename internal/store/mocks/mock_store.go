// Package mocks provides testify mocks for the store package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/donaldgifford/dealsense/internal/store"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// MockStore is a testify mock of store.Store.
type MockStore struct {
	mock.Mock
}

var _ store.Store = (*MockStore)(nil)

// NewMockStore returns a MockStore whose expectations are asserted when the
// test finishes.
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockStore {
	m := &MockStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockStore) InsertDeal(ctx context.Context, d *domain.Deal) (bool, error) {
	args := m.Called(ctx, d)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) UpsertDeal(ctx context.Context, d *domain.Deal) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockStore) GetDeal(ctx context.Context, id string) (*domain.Deal, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*domain.Deal)
	return d, args.Error(1)
}

func (m *MockStore) ListDeals(ctx context.Context, q *store.DealQuery) ([]domain.Deal, int, error) {
	args := m.Called(ctx, q)
	deals, _ := args.Get(0).([]domain.Deal)
	return deals, args.Int(1), args.Error(2)
}

func (m *MockStore) ListAllDeals(ctx context.Context) ([]domain.Deal, error) {
	args := m.Called(ctx)
	deals, _ := args.Get(0).([]domain.Deal)
	return deals, args.Error(1)
}

func (m *MockStore) CountDeals(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockStore) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *MockStore) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	profiles, _ := args.Get(0).([]domain.Profile)
	return profiles, args.Error(1)
}

func (m *MockStore) DeleteProfile(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) CountProfiles(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) CreateAlert(ctx context.Context, a *domain.Alert) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockStore) ListPendingAlerts(ctx context.Context) ([]domain.Alert, error) {
	args := m.Called(ctx)
	alerts, _ := args.Get(0).([]domain.Alert)
	return alerts, args.Error(1)
}

func (m *MockStore) MarkAlertsNotified(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
