// Package domain defines the core business types for the deal engine.
package domain

import (
	"math"
	"time"
)

// Source identifies where a deal was collected.
type Source string

// Source constants.
const (
	SourceCommunity Source = "community"
	SourceShop      Source = "shop"
	SourceManual    Source = "manual"
)

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceCommunity, SourceShop, SourceManual:
		return true
	default:
		return false
	}
}

// Extra is the optional sidecar attached to a deal. A zero value means
// nothing beyond the commerce facts is known.
type Extra struct {
	Conditions   []string `json:"conditions,omitempty"`
	Observations []string `json:"observations,omitempty"`
	ShippingInfo string   `json:"shipping_info,omitempty"`
	ShippingFee  *int64   `json:"shipping_fee,omitempty"`
}

// Deal is a stored promotional listing.
type Deal struct {
	ID            string `json:"deal_id"                  db:"deal_id"`
	Title         string `json:"title"                    db:"title"`
	PriceCurrent  int64  `json:"price_current"            db:"price_current"`
	PriceOriginal *int64 `json:"price_original,omitempty" db:"price_original"`
	DiscountRate  *int   `json:"discount_rate,omitempty"  db:"discount_rate"`

	Source   Source    `json:"source"    db:"source"`
	Merchant string    `json:"merchant"  db:"merchant"`
	URL      string    `json:"url"       db:"url"`
	Category string    `json:"category"  db:"category"`
	PostedAt time.Time `json:"posted_at" db:"posted_at"`

	// Derived
	Fingerprint     string  `json:"fingerprint"      db:"fingerprint"`
	PopularityScore float64 `json:"popularity_score" db:"popularity_score"`
	TrustScore      float64 `json:"trust_score"      db:"trust_score"`
	Extra           Extra   `json:"extra"            db:"extra"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DiscountRate returns the rounded discount percentage implied by the two
// prices, or nil when original is absent or not above current.
func DiscountRate(current int64, original *int64) *int {
	if original == nil || *original <= current || *original <= 0 {
		return nil
	}
	rate := int(math.Floor(float64(*original-current)/float64(*original)*100 + 0.5))
	return &rate
}

// Profile is a saved set of interests and constraints.
type Profile struct {
	ID              string    `json:"profile_id"                  db:"profile_id"`
	Categories      []string  `json:"categories"                  db:"categories"`
	Keywords        []string  `json:"keywords"                    db:"keywords"`
	Brands          []string  `json:"brands"                      db:"brands"`
	ExcludeKeywords []string  `json:"exclude_keywords"            db:"exclude_keywords"`
	PriceMax        *int64    `json:"price_max,omitempty"         db:"price_max"`
	MinDiscountRate *int      `json:"min_discount_rate,omitempty" db:"min_discount_rate"`
	CreatedAt       time.Time `json:"created_at"                  db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"                  db:"updated_at"`
}

// Score holds the per-query signals for a deal. Match is nil when the
// deal was not scored against a profile.
type Score struct {
	Popularity float64  `json:"popularity"`
	Trust      float64  `json:"trust"`
	Match      *float64 `json:"match,omitempty"`
}

// DealListItem is a deal as returned by listing operations.
type DealListItem struct {
	DealID         string    `json:"deal_id"`
	Title          string    `json:"title"`
	PriceCurrent   int64     `json:"price_current"`
	PriceOriginal  *int64    `json:"price_original,omitempty"`
	DiscountRate   *int      `json:"discount_rate,omitempty"`
	Source         Source    `json:"source"`
	Merchant       string    `json:"merchant"`
	URL            string    `json:"url"`
	Category       string    `json:"category"`
	PostedAt       time.Time `json:"posted_at"`
	Score          Score     `json:"score"`
	WhyRecommended []string  `json:"why_recommended"`
	RiskNote       *string   `json:"risk_note,omitempty"`
}

// PriceComponents breaks the headline price into what is known about it.
type PriceComponents struct {
	ShippingIncluded bool   `json:"shipping_included"`
	ShippingFee      *int64 `json:"shipping_fee,omitempty"`
}

// DealDetail is a single deal with its sidecar expanded.
type DealDetail struct {
	DealListItem
	Conditions      []string        `json:"conditions"`
	Observations    []string        `json:"observations"`
	PriceComponents PriceComponents `json:"price_components"`
}

// RiskLevel buckets a trust score for display.
type RiskLevel string

// Risk level constants.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Verification is the standalone trust assessment of one listing.
type Verification struct {
	TrustScore float64   `json:"trust_score"`
	Warnings   []string  `json:"warnings"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Notes      []string  `json:"notes"`
}

// Alert records a profile being notified about a deal.
type Alert struct {
	ID         string     `json:"id"                    db:"id"`
	ProfileID  string     `json:"profile_id"            db:"profile_id"`
	DealID     string     `json:"deal_id"               db:"deal_id"`
	MatchScore float64    `json:"match_score"           db:"match_score"`
	Notified   bool       `json:"notified"              db:"notified"`
	NotifiedAt *time.Time `json:"notified_at,omitempty" db:"notified_at"`
	CreatedAt  time.Time  `json:"created_at"            db:"created_at"`
}
