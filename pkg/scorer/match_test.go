package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestMatch(t *testing.T) {
	t.Parallel()

	tent := domain.Deal{
		Title:    "Kobea 2-person tent with tarp",
		Merchant: "Kobea Official",
		Category: "캠핑/아웃도어",
	}

	tests := []struct {
		name    string
		deal    domain.Deal
		profile domain.Profile
		want    float64
	}{
		{
			name:    "empty profile scores zero",
			deal:    tent,
			profile: domain.Profile{},
			want:    0,
		},
		{
			name:    "category only",
			deal:    tent,
			profile: domain.Profile{Categories: []string{"주방", "캠핑"}},
			want:    0.4,
		},
		{
			name:    "half the keywords",
			deal:    tent,
			profile: domain.Profile{Keywords: []string{"TENT", "chair"}},
			want:    0.2,
		},
		{
			name:    "brand in merchant",
			deal:    domain.Deal{Title: "2-person tent", Merchant: "Kobea Official"},
			profile: domain.Profile{Brands: []string{"kobea"}},
			want:    0.2,
		},
		{
			name: "everything matches",
			deal: tent,
			profile: domain.Profile{
				Categories: []string{"캠핑"},
				Keywords:   []string{"tent", "tarp"},
				Brands:     []string{"Kobea"},
			},
			want: 1.0,
		},
		{
			name: "exclude keyword vetoes",
			deal: domain.Deal{Title: "used Kobea tent and tarp", Category: "캠핑"},
			profile: domain.Profile{
				Categories:      []string{"캠핑"},
				Keywords:        []string{"tent", "tarp"},
				Brands:          []string{"Kobea"},
				ExcludeKeywords: []string{"USED"},
			},
			want: 0,
		},
		{
			name:    "empty exclude keyword is ignored",
			deal:    tent,
			profile: domain.Profile{Categories: []string{"캠핑"}, ExcludeKeywords: []string{""}},
			want:    0.4,
		},
		{
			name:    "empty title",
			deal:    domain.Deal{},
			profile: domain.Profile{Keywords: []string{"tent"}},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Match(tt.deal, tt.profile)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestPassesFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		deal    domain.Deal
		profile domain.Profile
		want    bool
	}{
		{
			name:    "no constraints",
			deal:    domain.Deal{Title: "tent", PriceCurrent: 50000},
			profile: domain.Profile{},
			want:    true,
		},
		{
			name:    "over price max",
			deal:    domain.Deal{Title: "tent", PriceCurrent: 50001},
			profile: domain.Profile{PriceMax: ptr(int64(50000))},
			want:    false,
		},
		{
			name:    "at price max",
			deal:    domain.Deal{Title: "tent", PriceCurrent: 50000},
			profile: domain.Profile{PriceMax: ptr(int64(50000))},
			want:    true,
		},
		{
			name:    "missing discount fails floor",
			deal:    domain.Deal{Title: "tent"},
			profile: domain.Profile{MinDiscountRate: ptr(10)},
			want:    false,
		},
		{
			name:    "discount below floor",
			deal:    domain.Deal{Title: "tent", DiscountRate: ptr(9)},
			profile: domain.Profile{MinDiscountRate: ptr(10)},
			want:    false,
		},
		{
			name:    "discount meets floor",
			deal:    domain.Deal{Title: "tent", DiscountRate: ptr(10)},
			profile: domain.Profile{MinDiscountRate: ptr(10)},
			want:    true,
		},
		{
			name:    "exclude keyword",
			deal:    domain.Deal{Title: "중고 텐트"},
			profile: domain.Profile{ExcludeKeywords: []string{"중고"}},
			want:    false,
		},
		{
			name:    "zero match still passes",
			deal:    domain.Deal{Title: "air fryer", Category: "주방"},
			profile: domain.Profile{Categories: []string{"캠핑"}, Keywords: []string{"tent"}},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PassesFilters(tt.deal, tt.profile))
		})
	}
}
