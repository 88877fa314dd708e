package engine

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/donaldgifford/dealsense/internal/metrics"
	"github.com/donaldgifford/dealsense/internal/notify"
	"github.com/donaldgifford/dealsense/pkg/normalize"
	score "github.com/donaldgifford/dealsense/pkg/scorer"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

const batchThreshold = 5

// ProcessAlerts sends notifications for pending alerts, then marks them as
// notified. Alerts are grouped by profile; a profile with 5+ pending alerts
// gets a single batch. Failed notifications stay pending.
func (e *Engine) ProcessAlerts(ctx context.Context) error {
	pending, err := e.store.ListPendingAlerts(ctx)
	if err != nil {
		return fmt.Errorf("listing pending alerts: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	grouped := lo.GroupBy(pending, func(a domain.Alert) string { return a.ProfileID })
	order := lo.Uniq(lo.Map(pending, func(a domain.Alert, _ int) string { return a.ProfileID }))

	for _, profileID := range order {
		profile, err := e.store.GetProfile(ctx, profileID)
		if err != nil {
			e.log.Warn("skipping alerts for missing profile", "profile", profileID, "error", err)
			continue
		}

		if err := e.sendAlerts(ctx, profile, grouped[profileID]); err != nil {
			e.log.Error("sending alerts failed", "profile", profileID, "error", err)
			metrics.NotificationFailuresTotal.Inc()
		}
	}

	return nil
}

func (e *Engine) sendAlerts(ctx context.Context, profile *domain.Profile, alerts []domain.Alert) error {
	if len(alerts) >= batchThreshold {
		return e.sendBatch(ctx, profile, alerts)
	}

	for i := range alerts {
		if err := e.sendSingle(ctx, profile, &alerts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) sendSingle(ctx context.Context, profile *domain.Profile, alert *domain.Alert) error {
	deal, err := e.store.GetDeal(ctx, alert.DealID)
	if err != nil {
		return fmt.Errorf("getting deal %s: %w", alert.DealID, err)
	}

	if err := e.notifier.SendAlert(ctx, e.buildAlertPayload(ctx, profile, deal, alert.MatchScore)); err != nil {
		return fmt.Errorf("sending alert: %w", err)
	}

	metrics.AlertsFiredTotal.Inc()

	return e.store.MarkAlertsNotified(ctx, []string{alert.ID})
}

func (e *Engine) sendBatch(ctx context.Context, profile *domain.Profile, alerts []domain.Alert) error {
	payloads := make([]notify.AlertPayload, 0, len(alerts))
	alertIDs := make([]string, 0, len(alerts))

	for i := range alerts {
		deal, err := e.store.GetDeal(ctx, alerts[i].DealID)
		if err != nil {
			continue // deal may have been removed
		}
		payloads = append(payloads, *e.buildAlertPayload(ctx, profile, deal, alerts[i].MatchScore))
		alertIDs = append(alertIDs, alerts[i].ID)
	}

	if len(payloads) == 0 {
		return nil
	}

	if err := e.notifier.SendBatchAlert(ctx, payloads, profile.ID); err != nil {
		return fmt.Errorf("sending batch alert: %w", err)
	}

	metrics.AlertsFiredTotal.Add(float64(len(alertIDs)))

	return e.store.MarkAlertsNotified(ctx, alertIDs)
}

func (e *Engine) buildAlertPayload(
	ctx context.Context,
	profile *domain.Profile,
	deal *domain.Deal,
	match float64,
) *notify.AlertPayload {
	return &notify.AlertPayload{
		ProfileID:      profile.ID,
		ProfileSummary: normalize.ProfileSummary(*profile),
		DealID:         deal.ID,
		DealTitle:      deal.Title,
		URL:            deal.URL,
		Price:          normalize.Won(deal.PriceCurrent),
		DiscountRate:   deal.DiscountRate,
		Merchant:       deal.Merchant,
		MatchScore:     match,
		TrustScore:     e.trustAt(ctx, deal, e.nowFunc()),
		Reasons:        score.WhyRecommended(*deal, *profile, match),
		RiskNote:       score.RiskNote(*deal),
	}
}
