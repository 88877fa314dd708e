package score

import (
	"strings"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// Verification limits and thresholds.
const (
	MaxWarnings = 5
	MaxNotes    = 3

	LowRiskTrust    = 0.8
	MediumRiskTrust = 0.5

	longTitle = 100
)

// VerifyWarning is emitted when its category is cued in the title.
type VerifyWarning struct {
	Category string
	Message  string
}

// VerifyWarnings are emitted in this order.
var VerifyWarnings = []VerifyWarning{
	{Category: RiskOptions, Message: "Options may change the final price."},
	{Category: RiskStock, Message: "Availability may be unstable."},
	{Category: RiskShipping, Message: "Shipping fee may apply."},
	{Category: RiskRefurb, Message: "Refurb/used item possibility."},
	{Category: RiskRandom, Message: "Random selection - exact item not guaranteed."},
}

var levelNotes = map[domain.RiskLevel]string{
	domain.RiskLow:    "Deal appears trustworthy based on analysis",
	domain.RiskMedium: "Moderate risk detected - verify details carefully",
	domain.RiskHigh:   "High risk detected - proceed with caution",
}

// Level buckets a trust score.
func Level(trust float64) domain.RiskLevel {
	switch {
	case trust >= LowRiskTrust:
		return domain.RiskLow
	case trust >= MediumRiskTrust:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// Verify assesses a listing from its title, URL and an already computed
// trust score.
func Verify(title, rawURL string, trust float64) domain.Verification {
	cued := make(map[string]bool, len(RiskCategories))
	for _, c := range matchedCategories(title) {
		cued[c.Name] = true
	}
	if strings.Contains(strings.ToLower(rawURL), "shipping") {
		cued[RiskShipping] = true
	}

	warnings := []string{}
	for _, w := range VerifyWarnings {
		if cued[w.Category] {
			warnings = append(warnings, w.Message)
		}
	}

	level := Level(trust)
	notes := []string{levelNotes[level]}
	if strings.Contains(strings.ToLower(rawURL), "example.com") {
		notes = append(notes, "Sample URL - verify actual merchant domain")
	}
	if len([]rune(title)) > longTitle {
		notes = append(notes, "Long title may indicate complex conditions")
	}

	return domain.Verification{
		TrustScore: Clamp(trust),
		Warnings:   warnings[:min(len(warnings), MaxWarnings)],
		RiskLevel:  level,
		Notes:      notes[:min(len(notes), MaxNotes)],
	}
}
