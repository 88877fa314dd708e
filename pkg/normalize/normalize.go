// Package normalize canonicalizes deal titles, merchants and profiles for
// comparison and display.
package normalize

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// NoiseWords are promotional filler terms removed from titles before
// fingerprinting. Entries are lowercase.
var NoiseWords = []string{
	"무료배송",
	"당일배송",
	"특가",
	"핫딜",
	"쿠폰",
	"세일",
	"할인",
	"오늘만",
	"마감임박",
	"최저가",
	"free shipping",
	"free-shipping",
	"same day delivery",
	"today only",
	"lowest price",
	"flash sale",
	"flash-sale",
	"hot deal",
	"coupon",
}

// CuratedBrands is the ordered list of brands recognized by ExtractBrands.
var CuratedBrands = []string{
	"삼성",
	"애플",
	"Apple",
	"LG",
	"나이키",
	"Nike",
	"아디다스",
	"Adidas",
	"코카콜라",
	"네이버",
	"카카오",
}

// PriceBandWidth is the width of a fingerprint price band.
const PriceBandWidth = 5000

// NoFilters is the summary of a profile with every facet empty.
const NoFilters = "No filters set"

const ellipsis = "..."

// noiseByLength holds NoiseWords longest first so phrases go before any
// shorter entry they contain.
var noiseByLength = func() []string {
	words := slices.Clone(NoiseWords)
	slices.SortStableFunc(words, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	return words
}()

var numberPrinter = message.NewPrinter(language.English)

// Title lowercases s, removes noise words, drops every character that is
// not a letter, digit, whitespace or Hangul, and collapses whitespace.
func Title(s string) string {
	lower := strings.ToLower(s)
	for _, w := range noiseByLength {
		lower = strings.ReplaceAll(lower, w, "")
	}

	kept := strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return -1
	}, lower)

	return strings.Join(strings.Fields(kept), " ")
}

func keepRune(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul syllables
		return true
	case r >= 0x3131 && r <= 0x314E: // Hangul compatibility jamo
		return true
	default:
		return false
	}
}

// Merchant lowercases m and removes all whitespace.
func Merchant(m string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(m))
}

// Truncate cuts s to maxLen characters, ending in "..." when anything was
// removed.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// ExtractBrands returns every curated brand whose lowercase form occurs in
// text, in curated order.
func ExtractBrands(text string) []string {
	lower := strings.ToLower(text)
	var brands []string
	for _, b := range CuratedBrands {
		if strings.Contains(lower, strings.ToLower(b)) {
			brands = append(brands, b)
		}
	}
	return brands
}

// PriceBand rounds price to the nearest multiple of PriceBandWidth,
// rounding halves up.
func PriceBand(price int64) int64 {
	return int64(math.Floor(float64(price)/PriceBandWidth+0.5)) * PriceBandWidth
}

// Won formats price with thousands separators and the won sign.
func Won(price int64) string {
	return numberPrinter.Sprintf("%d원", price)
}

// ProfileSummary renders the non-empty facets of p on one line.
func ProfileSummary(p domain.Profile) string {
	var parts []string

	if len(p.Categories) > 0 {
		parts = append(parts, "Categories: "+strings.Join(p.Categories, ", "))
	}
	if len(p.Keywords) > 0 {
		parts = append(parts, "Keywords: "+strings.Join(p.Keywords, ", "))
	}
	if len(p.Brands) > 0 {
		parts = append(parts, "Brands: "+strings.Join(p.Brands, ", "))
	}
	if p.PriceMax != nil {
		parts = append(parts, "Max price: "+Won(*p.PriceMax))
	}
	if p.MinDiscountRate != nil {
		parts = append(parts, numberPrinter.Sprintf("Min discount: %d%%", *p.MinDiscountRate))
	}
	if len(p.ExcludeKeywords) > 0 {
		parts = append(parts, "Excluding: "+strings.Join(p.ExcludeKeywords, ", "))
	}

	if len(parts) == 0 {
		return NoFilters
	}
	return strings.Join(parts, " | ")
}
