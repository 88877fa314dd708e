package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/donaldgifford/dealsense/internal/ingest"
	"github.com/donaldgifford/dealsense/internal/metrics"
	"github.com/donaldgifford/dealsense/internal/store"
	"github.com/donaldgifford/dealsense/pkg/dedupe"
	"github.com/donaldgifford/dealsense/pkg/normalize"
	score "github.com/donaldgifford/dealsense/pkg/scorer"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// Window is the look-back period of the hot list.
type Window string

// Hot list windows.
const (
	Window24h Window = "24h"
	Window7d  Window = "7d"
)

// Duration returns the length of w.
func (w Window) Duration() (time.Duration, bool) {
	switch w {
	case Window24h:
		return 24 * time.Hour, true
	case Window7d:
		return 7 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// HotSort orders the hot list.
type HotSort string

// Hot list orderings.
const (
	SortPopularity HotSort = "popularity"
	SortDiscount   HotSort = "discount"
)

// List sizes.
const (
	HotDealsSize     = 10
	DefaultDealLimit = 20
	MaxDealLimit     = 30
	maxNotes         = 3
)

// Notes attached to interest listings.
const (
	NoteNoMatches = "No deals match your criteria. Try relaxing filters."
	noteRemoved   = "Removed %d duplicate deals"
	noteShowing   = "Showing top %d of %d matches"
)

// HotDealsResult is the trending list for one window.
type HotDealsResult struct {
	Window Window                `json:"window"`
	Items  []domain.DealListItem `json:"items"`
}

// InterestsOptions tunes DealsByInterests. A zero Limit selects
// DefaultDealLimit.
type InterestsOptions struct {
	Limit  int
	Dedupe bool
}

// InterestsResult is a personalized deal list.
type InterestsResult struct {
	Items []domain.DealListItem `json:"items"`
	Notes []string              `json:"notes"`
}

// VerifyRequest identifies the listing to verify. At least one field must
// be set; DealID takes precedence over URL and Title.
type VerifyRequest struct {
	DealID string
	URL    string
	Title  string
}

// HotDeals returns the top trending deals posted within window.
func (e *Engine) HotDeals(ctx context.Context, window Window, sort HotSort) (*HotDealsResult, error) {
	if window == "" {
		window = Window24h
	}
	if sort == "" {
		sort = SortPopularity
	}

	span, ok := window.Duration()
	if !ok {
		return nil, fmt.Errorf("window %q: %w", window, ErrInvalidInput)
	}

	q := &store.DealQuery{Limit: HotDealsSize}
	switch sort {
	case SortPopularity:
		q.OrderBy = store.OrderByPopularity
	case SortDiscount:
		q.OrderBy = store.OrderByDiscount
	default:
		return nil, fmt.Errorf("sort %q: %w", sort, ErrInvalidInput)
	}

	now := e.nowFunc()
	since := now.Add(-span)
	q.Since = &since

	deals, _, err := e.store.ListDeals(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing hot deals: %w", err)
	}

	items := make([]domain.DealListItem, 0, len(deals))
	for i := range deals {
		d := &deals[i]
		s := score.NewScore(d.PopularityScore, e.trustAt(ctx, d, now), nil)
		items = append(items, listItem(d, s, score.HotReasons()))
	}

	return &HotDealsResult{Window: window, Items: items}, nil
}

type rankedDeal struct {
	deal     *domain.Deal
	score    domain.Score
	combined float64
}

// DealsByInterests filters every stored deal through the profile, ranks the
// survivors and optionally collapses near duplicates.
func (e *Engine) DealsByInterests(
	ctx context.Context,
	profileID string,
	opts InterestsOptions,
) (*InterestsResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultDealLimit
	}
	limit = min(limit, MaxDealLimit)

	profile, err := e.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, lookupErr("profile", profileID, err)
	}

	deals, err := e.store.ListAllDeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}

	now := e.nowFunc()
	notes := []string{}

	ranked := make([]rankedDeal, 0, len(deals))
	for i := range deals {
		d := &deals[i]
		if !score.PassesFilters(*d, *profile) {
			continue
		}
		match := score.Match(*d, *profile)
		s := score.NewScore(d.PopularityScore, e.trustAt(ctx, d, now), &match)
		ranked = append(ranked, rankedDeal{deal: d, score: s, combined: score.Combined(s)})
	}

	if len(ranked) == 0 {
		notes = append(notes, NoteNoMatches)
	}

	combined := func(r rankedDeal) float64 { return r.combined }
	id := func(r rankedDeal) string { return r.deal.ID }
	score.Rank(ranked, combined, id)

	if opts.Dedupe {
		before := len(ranked)
		ranked = dedupe.Deduplicate(ranked, func(r rankedDeal) string { return r.deal.Fingerprint }, combined)
		score.Rank(ranked, combined, id)

		if removed := before - len(ranked); removed > 0 {
			metrics.DedupRemovedTotal.Add(float64(removed))
			notes = append(notes, fmt.Sprintf(noteRemoved, removed))
		}
	}

	total := len(ranked)
	if total > limit {
		ranked = ranked[:limit]
		notes = append(notes, fmt.Sprintf(noteShowing, limit, total))
	}

	items := make([]domain.DealListItem, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, listItem(r.deal, r.score, score.WhyRecommended(*r.deal, *profile, *r.score.Match)))
	}

	if len(notes) > maxNotes {
		notes = notes[:maxNotes]
	}
	return &InterestsResult{Items: items, Notes: notes}, nil
}

// GetDeal returns a single deal with its sidecar expanded.
func (e *Engine) GetDeal(ctx context.Context, dealID string) (*domain.DealDetail, error) {
	d, err := e.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, lookupErr("deal", dealID, err)
	}

	s := score.NewScore(d.PopularityScore, e.trustAt(ctx, d, e.nowFunc()), nil)

	return &domain.DealDetail{
		DealListItem: listItem(d, s, nil),
		Conditions:   nonNil(d.Extra.Conditions),
		Observations: nonNil(d.Extra.Observations),
		PriceComponents: domain.PriceComponents{
			ShippingIncluded: ShippingIncluded(d.Extra.ShippingInfo),
			ShippingFee:      d.Extra.ShippingFee,
		},
	}, nil
}

// VerifyDeal assesses a stored deal, or a bare title and URL.
func (e *Engine) VerifyDeal(ctx context.Context, req VerifyRequest) (*domain.Verification, error) {
	if req.DealID == "" && req.URL == "" && req.Title == "" {
		return nil, fmt.Errorf("at least one of deal_id, url, or title is required: %w", ErrInvalidInput)
	}

	if req.DealID == "" {
		v := score.Verify(req.Title, req.URL, score.TextTrust(req.Title, req.URL))
		return &v, nil
	}

	d, err := e.store.GetDeal(ctx, req.DealID)
	if err != nil {
		return nil, lookupErr("deal", req.DealID, err)
	}

	v := score.Verify(d.Title, d.URL, e.trustAt(ctx, d, e.nowFunc()))
	return &v, nil
}

// ShippingIncluded reports whether the shipping note advertises free
// delivery.
func ShippingIncluded(info string) bool {
	return strings.Contains(info, "무료") || strings.Contains(strings.ToLower(info), "free")
}

func listItem(d *domain.Deal, s domain.Score, reasons []string) domain.DealListItem {
	return domain.DealListItem{
		DealID:         d.ID,
		Title:          normalize.Truncate(d.Title, ingest.MaxTitleLength),
		PriceCurrent:   d.PriceCurrent,
		PriceOriginal:  d.PriceOriginal,
		DiscountRate:   d.DiscountRate,
		Source:         d.Source,
		Merchant:       d.Merchant,
		URL:            d.URL,
		Category:       d.Category,
		PostedAt:       d.PostedAt,
		Score:          s,
		WhyRecommended: nonNil(reasons),
		RiskNote:       score.RiskNote(*d),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
