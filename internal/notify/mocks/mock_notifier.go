// Package mocks provides testify mocks for the notify package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/donaldgifford/dealsense/internal/notify"
)

// MockNotifier is a testify mock of notify.Notifier.
type MockNotifier struct {
	mock.Mock
}

var _ notify.Notifier = (*MockNotifier)(nil)

// NewMockNotifier returns a MockNotifier whose expectations are asserted
// when the test finishes.
func NewMockNotifier(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockNotifier {
	m := &MockNotifier{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNotifier) SendAlert(ctx context.Context, alert *notify.AlertPayload) error {
	return m.Called(ctx, alert).Error(0)
}

func (m *MockNotifier) SendBatchAlert(ctx context.Context, alerts []notify.AlertPayload, profileID string) error {
	return m.Called(ctx, alerts, profileID).Error(0)
}
