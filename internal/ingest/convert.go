package ingest

import (
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/dealsense/pkg/dedupe"
	"github.com/donaldgifford/dealsense/pkg/normalize"
	score "github.com/donaldgifford/dealsense/pkg/scorer"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// MaxTitleLength is the stored title length in characters.
const MaxTitleLength = 120

// Defaults applied to candidates missing provenance.
const (
	DefaultMerchant = "Unknown"
	DefaultCategory = "기타"
)

// DealID returns the identifier for a candidate. Candidates with a URL get a
// stable id so refetching the same listing is recognized as a duplicate.
func DealID(c *Candidate) string {
	if c.URL == "" {
		return "d_" + uuid.NewString()
	}
	return "d_" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(c.URL)).String()
}

// ToDeal converts a validated candidate into a deal with derived fields
// computed as of now.
func ToDeal(c *Candidate, id string, now time.Time) domain.Deal {
	d := domain.Deal{
		ID:            id,
		Title:         normalize.Truncate(c.Title, MaxTitleLength),
		PriceCurrent:  max(c.PriceCurrent, 0),
		PriceOriginal: c.PriceOriginal,
		Source:        c.Source,
		Merchant:      c.Merchant,
		URL:           c.URL,
		Category:      c.Category,
		PostedAt:      c.PostedAt,
	}

	if d.Source == "" {
		d.Source = domain.SourceShop
	}
	if d.Merchant == "" {
		d.Merchant = DefaultMerchant
	}
	if d.Category == "" {
		d.Category = DefaultCategory
	}
	if d.PostedAt.IsZero() {
		d.PostedAt = now
	}
	if c.Popularity != nil {
		d.PopularityScore = score.Clamp(*c.Popularity)
	}
	if c.Extra != nil {
		d.Extra = *c.Extra
	}

	d.DiscountRate = domain.DiscountRate(d.PriceCurrent, d.PriceOriginal)
	d.Fingerprint = dedupe.Fingerprint(d)
	d.TrustScore = score.TrustAt(d, now)

	return d
}
