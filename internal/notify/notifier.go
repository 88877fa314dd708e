// Package notify defines the notification interface and implementations
// for alert delivery.
package notify

import (
	"context"
)

// AlertPayload contains the data needed to send a deal alert notification.
type AlertPayload struct {
	ProfileID      string
	ProfileSummary string
	DealID         string
	DealTitle      string
	URL            string
	Price          string
	DiscountRate   *int
	Merchant       string
	MatchScore     float64
	TrustScore     float64
	Reasons        []string
	RiskNote       *string
}

// Notifier defines the interface for sending deal alert notifications.
type Notifier interface {
	SendAlert(ctx context.Context, alert *AlertPayload) error
	SendBatchAlert(ctx context.Context, alerts []AlertPayload, profileID string) error
}
