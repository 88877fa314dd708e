package ingest_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/dealsense/internal/ingest"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestCandidate_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		c       ingest.Candidate
		wantErr bool
	}{
		{
			name: "valid shop candidate",
			c: ingest.Candidate{
				Title:        "코베아 텐트",
				PriceCurrent: 45000,
				Source:       domain.SourceShop,
				URL:          "https://shopping.naver.com/item/1",
			},
		},
		{
			name: "empty source allowed",
			c:    ingest.Candidate{Title: "tent"},
		},
		{
			name:    "missing title",
			c:       ingest.Candidate{PriceCurrent: 1000, Source: domain.SourceShop},
			wantErr: true,
		},
		{
			name:    "negative price",
			c:       ingest.Candidate{Title: "tent", PriceCurrent: -1},
			wantErr: true,
		},
		{
			name:    "unknown source",
			c:       ingest.Candidate{Title: "tent", Source: "forum"},
			wantErr: true,
		},
		{
			name:    "malformed url",
			c:       ingest.Candidate{Title: "tent", URL: "not a url"},
			wantErr: true,
		},
		{
			name:    "popularity out of range",
			c:       ingest.Candidate{Title: "tent", Popularity: ptr(1.5)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestToDeal(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("derived fields", func(t *testing.T) {
		t.Parallel()

		c := &ingest.Candidate{
			Title:         "free-shipping Kobea 2-person tent flash-sale",
			PriceCurrent:  45000,
			PriceOriginal: ptr(int64(89000)),
			Source:        domain.SourceCommunity,
			Merchant:      "Camping Korea",
			URL:           "https://www.coupang.com/vp/products/1",
			Category:      "캠핑",
			PostedAt:      now.Add(-time.Hour),
			Popularity:    ptr(0.7),
		}

		d := ingest.ToDeal(c, "d_1", now)

		assert.Equal(t, "d_1", d.ID)
		require.NotNil(t, d.DiscountRate)
		assert.Equal(t, 49, *d.DiscountRate)
		assert.Equal(t, "kobea 2person tent|campingkorea|45000", d.Fingerprint)
		assert.InDelta(t, 1.0, d.TrustScore, 1e-9)
		assert.InDelta(t, 0.7, d.PopularityScore, 1e-9)
		assert.Equal(t, domain.SourceCommunity, d.Source)
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()

		d := ingest.ToDeal(&ingest.Candidate{Title: "tent"}, "d_2", now)

		assert.Equal(t, ingest.DefaultMerchant, d.Merchant)
		assert.Equal(t, ingest.DefaultCategory, d.Category)
		assert.Equal(t, domain.SourceShop, d.Source)
		assert.Equal(t, now, d.PostedAt)
		assert.Nil(t, d.DiscountRate)
		assert.Zero(t, d.PopularityScore)
		assert.Empty(t, d.Extra.Conditions)
	})

	t.Run("long title truncated", func(t *testing.T) {
		t.Parallel()

		d := ingest.ToDeal(&ingest.Candidate{Title: strings.Repeat("가", 200)}, "d_3", now)

		assert.Equal(t, ingest.MaxTitleLength, utf8.RuneCountInString(d.Title))
		assert.True(t, strings.HasSuffix(d.Title, "..."))
	})

	t.Run("risky stale listing", func(t *testing.T) {
		t.Parallel()

		c := &ingest.Candidate{
			Title:    "리퍼 공기청정기",
			PostedAt: now.Add(-10 * 24 * time.Hour),
		}
		d := ingest.ToDeal(c, "d_4", now)

		assert.InDelta(t, 0.5, d.TrustScore, 1e-9)
	})
}

func TestDealID(t *testing.T) {
	t.Parallel()

	a := ingest.DealID(&ingest.Candidate{URL: "https://example.com/deals/1"})
	b := ingest.DealID(&ingest.Candidate{URL: "https://example.com/deals/1"})
	c := ingest.DealID(&ingest.Candidate{URL: "https://example.com/deals/2"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "d_"))

	x := ingest.DealID(&ingest.Candidate{})
	y := ingest.DealID(&ingest.Candidate{})
	assert.NotEqual(t, x, y)
}
