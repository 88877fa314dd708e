package score

import (
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// Match weights.
const (
	CategoryWeight = 0.4
	KeywordWeight  = 0.4
	BrandWeight    = 0.2
)

// Match scores how relevant d is to p. Any exclude keyword in the title
// vetoes the deal with a score of 0.
func Match(d domain.Deal, p domain.Profile) float64 {
	if containsAny(d.Title, p.ExcludeKeywords) {
		return 0
	}

	var s float64
	if _, ok := matchedCategory(d, p); ok {
		s += CategoryWeight
	}
	if len(p.Keywords) > 0 {
		s += float64(len(matchedKeywords(d.Title, p.Keywords))) / float64(len(p.Keywords)) * KeywordWeight
	}
	if _, ok := matchedBrand(d, p); ok {
		s += BrandWeight
	}

	return Clamp(s)
}

// PassesFilters reports whether d satisfies the hard constraints of p.
// A deal without a discount never satisfies a minimum discount.
func PassesFilters(d domain.Deal, p domain.Profile) bool {
	if p.PriceMax != nil && d.PriceCurrent > *p.PriceMax {
		return false
	}
	if p.MinDiscountRate != nil {
		if d.DiscountRate == nil || *d.DiscountRate < *p.MinDiscountRate {
			return false
		}
	}
	return !containsAny(d.Title, p.ExcludeKeywords)
}

// matchedCategory returns the first profile category found in the deal
// category.
func matchedCategory(d domain.Deal, p domain.Profile) (string, bool) {
	return firstContained(d.Category, p.Categories)
}

// matchedKeywords returns the keywords found in title, in profile order.
func matchedKeywords(title string, keywords []string) []string {
	var out []string
	for _, k := range keywords {
		if containsAny(title, []string{k}) {
			out = append(out, k)
		}
	}
	return out
}

// matchedBrand returns the first profile brand found in the title or the
// merchant.
func matchedBrand(d domain.Deal, p domain.Profile) (string, bool) {
	for _, b := range p.Brands {
		if containsAny(d.Title, []string{b}) || containsAny(d.Merchant, []string{b}) {
			return b, true
		}
	}
	return "", false
}
