package normalize_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/dealsense/pkg/normalize"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "english noise words removed",
			input: "free-shipping Kobea 2-person tent flash-sale",
			want:  "kobea 2person tent",
		},
		{
			name:  "spaced noise phrases removed",
			input: "Kobea Tent FREE SHIPPING today only",
			want:  "kobea tent",
		},
		{
			name:  "korean noise words removed",
			input: "[무료배송] 코베아 텐트 특가 최저가!!",
			want:  "코베아 텐트",
		},
		{
			name:  "punctuation stripped and whitespace collapsed",
			input: "  Galaxy   S24 (256GB) / 블랙  ",
			want:  "galaxy s24 256gb 블랙",
		},
		{
			name:  "hangul jamo kept",
			input: "ㅋㅋ 대박",
			want:  "ㅋㅋ 대박",
		},
		{name: "empty", input: "", want: ""},
		{name: "only noise", input: "핫딜 쿠폰", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.Title(tt.input))
		})
	}
}

func TestMerchant(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "campingkorea", normalize.Merchant("Camping Korea"))
	assert.Equal(t, "campingkorea", normalize.Merchant(" CAMPING\tkorea "))
	assert.Empty(t, normalize.Merchant(""))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "shorter than max", input: "tent", maxLen: 10, want: "tent"},
		{name: "exactly max", input: "0123456789", maxLen: 10, want: "0123456789"},
		{name: "longer than max", input: "0123456789abc", maxLen: 10, want: "0123456..."},
		{name: "multibyte counted by character", input: "가나다라마바사", maxLen: 5, want: "가나..."},
		{name: "tiny max", input: "abcdef", maxLen: 2, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := normalize.Truncate(tt.input, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.maxLen)
		})
	}
}

func TestExtractBrands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "curated order not input order", input: "Nike vs 삼성 shoes", want: []string{"삼성", "Nike"}},
		{name: "case insensitive", input: "APPLE watch", want: []string{"Apple"}},
		{name: "substring match", input: "glgl bottle", want: []string{"LG"}},
		{name: "no brand", input: "generic tent", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.ExtractBrands(tt.input))
		})
	}
}

func TestPriceBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price int64
		want  int64
	}{
		{price: 0, want: 0},
		{price: 2499, want: 0},
		{price: 2500, want: 5000},
		{price: 45000, want: 45000},
		{price: 47499, want: 45000},
		{price: 47500, want: 50000},
		{price: 123456, want: 125000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.PriceBand(tt.price), "price %d", tt.price)
	}
}

func TestWon(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0원", normalize.Won(0))
	assert.Equal(t, "9,900원", normalize.Won(9900))
	assert.Equal(t, "1,234,567원", normalize.Won(1234567))
}

func TestProfileSummary(t *testing.T) {
	t.Parallel()

	priceMax := int64(150000)
	minDiscount := 20

	tests := []struct {
		name    string
		profile domain.Profile
		want    string
	}{
		{
			name:    "empty profile",
			profile: domain.Profile{},
			want:    normalize.NoFilters,
		},
		{
			name: "all facets in fixed order",
			profile: domain.Profile{
				ExcludeKeywords: []string{"중고"},
				Brands:          []string{"코베아"},
				Keywords:        []string{"텐트", "타프"},
				Categories:      []string{"캠핑"},
				PriceMax:        &priceMax,
				MinDiscountRate: &minDiscount,
			},
			want: "Categories: 캠핑 | Keywords: 텐트, 타프 | Brands: 코베아 | " +
				"Max price: 150,000원 | Min discount: 20% | Excluding: 중고",
		},
		{
			name:    "single facet",
			profile: domain.Profile{Keywords: []string{"air fryer"}},
			want:    "Keywords: air fryer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.ProfileSummary(tt.profile))
		})
	}
}
