// Package score computes the trust, match and combined ranking signals for
// deals and renders the explanations shown next to them.
//
// Every function here is pure. The only time-dependent input is the
// observation time passed to TrustAt.
package score

import (
	"net/url"
	"strings"
	"time"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// RiskCategory is a family of title cues that lower trust.
type RiskCategory struct {
	Name     string
	Keywords []string
	Penalty  float64
}

// Risk category names.
const (
	RiskOptions  = "options"
	RiskStock    = "stock"
	RiskRandom   = "random"
	RiskRefurb   = "refurbished"
	RiskShipping = "shipping"
)

// RiskCategories are applied in order; each category subtracts its penalty
// at most once.
var RiskCategories = []RiskCategory{
	{
		Name:     RiskOptions,
		Keywords: []string{"옵션", "선택", "추가금", "option", "extra charge"},
		Penalty:  0.15,
	},
	{
		Name:     RiskStock,
		Keywords: []string{"품절", "예약", "sold out", "pre-order", "preorder"},
		Penalty:  0.20,
	},
	{
		Name:     RiskRandom,
		Keywords: []string{"랜덤", "무작위", "random"},
		Penalty:  0.25,
	},
	{
		Name:     RiskRefurb,
		Keywords: []string{"리퍼", "리퍼브", "중고", "refurb", "pre-owned", "second-hand"},
		Penalty:  0.30,
	},
	{
		Name: RiskShipping,
		Keywords: []string{
			"해외배송", "배송비별도",
			"overseas shipping", "international shipping", "shipping not included",
		},
		Penalty: 0.15,
	},
}

// TrustedDomains are merchant hosts that earn DomainBonus.
var TrustedDomains = []string{
	"coupang.com",
	"naver.com",
	"gmarket.com",
	"11st.co.kr",
	"ssg.com",
	"auction.co.kr",
}

// Trust adjustments.
const (
	DomainBonus = 0.10

	staleAge     = 7 * 24 * time.Hour
	stalePenalty = 0.20
	agingAge     = 3 * 24 * time.Hour
	agingPenalty = 0.10
)

// Trust scores d as of now.
func Trust(d domain.Deal) float64 {
	return TrustAt(d, time.Now())
}

// TrustAt scores d as observed at now.
func TrustAt(d domain.Deal, now time.Time) float64 {
	return Clamp(1.0 - RiskPenalty(d.Title) + DomainBonusFor(d.URL) - AgePenalty(d.PostedAt, now))
}

// TextTrust scores a listing known only by its title and URL. No age band
// applies.
func TextTrust(title, rawURL string) float64 {
	return Clamp(1.0 - RiskPenalty(title) + DomainBonusFor(rawURL))
}

// RiskPenalty sums the penalties of every risk category cued in title.
func RiskPenalty(title string) float64 {
	var penalty float64
	for _, c := range matchedCategories(title) {
		penalty += c.Penalty
	}
	return penalty
}

// DomainBonusFor returns DomainBonus when the host of rawURL is, or is a
// subdomain of, a trusted domain.
func DomainBonusFor(rawURL string) float64 {
	host := urlHost(strings.TrimSpace(rawURL))
	if host == "" {
		return 0
	}
	for _, d := range TrustedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return DomainBonus
		}
	}
	return 0
}

// Age bands used by AgePenalty.
const (
	BandFresh = iota
	BandAging
	BandStale
)

// urlHost returns the lower-cased host of rawURL. A URL without a scheme,
// such as "coupang.com/vp/1", is read as https.
func urlHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err == nil {
		if host := u.Hostname(); host != "" || u.Scheme != "" {
			return strings.ToLower(host)
		}
	}
	if rawURL == "" || strings.Contains(rawURL, "://") {
		return ""
	}
	u, err = url.Parse("https://" + rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// AgeBand classifies a deal posted at postedAt as fresh, aging or stale at
// now. A zero postedAt is fresh.
func AgeBand(postedAt, now time.Time) int {
	if postedAt.IsZero() {
		return BandFresh
	}
	age := now.Sub(postedAt)
	switch {
	case age > staleAge:
		return BandStale
	case age > agingAge:
		return BandAging
	default:
		return BandFresh
	}
}

// AgePenalty returns the decay for a deal posted at postedAt. A zero
// postedAt is treated as fresh.
func AgePenalty(postedAt, now time.Time) float64 {
	switch AgeBand(postedAt, now) {
	case BandStale:
		return stalePenalty
	case BandAging:
		return agingPenalty
	default:
		return 0
	}
}

// Clamp bounds v to [0,1].
func Clamp(v float64) float64 {
	return min(max(v, 0), 1)
}

// matchedCategories returns the risk categories cued in title, in table
// order.
func matchedCategories(title string) []RiskCategory {
	lower := strings.ToLower(title)
	var out []RiskCategory
	for _, c := range RiskCategories {
		if containsAny(lower, c.Keywords) {
			out = append(out, c)
		}
	}
	return out
}

func hasCategory(title, name string) bool {
	for _, c := range matchedCategories(title) {
		if c.Name == name {
			return true
		}
	}
	return false
}

// containsAny reports whether any non-empty needle occurs in haystack,
// ignoring case.
func containsAny(haystack string, needles []string) bool {
	_, ok := firstContained(haystack, needles)
	return ok
}

// firstContained returns the first non-empty needle occurring in haystack,
// ignoring case.
func firstContained(haystack string, needles []string) (string, bool) {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if n == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(n)) {
			return n, true
		}
	}
	return "", false
}
