package score

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/dealsense/pkg/normalize"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// Explanation limits.
const (
	MaxReasons        = 5
	MaxReasonKeywords = 3
	HighDiscountRate  = 30
	StrongMatchScore  = 0.8
	MaxRiskNoteLength = 140
)

// RiskLabel is the short phrase emitted in a risk note when its category
// is cued.
type RiskLabel struct {
	Category string
	Label    string
}

// RiskLabels are emitted in this order. Randomized fulfilment has no label.
var RiskLabels = []RiskLabel{
	{Category: RiskOptions, Label: "options may vary price"},
	{Category: RiskStock, Label: "availability uncertain"},
	{Category: RiskShipping, Label: "shipping fees may apply"},
	{Category: RiskRefurb, Label: "refurbished/used item"},
}

var hotReasons = []string{
	"High popularity score",
	"Trending deal",
	"Recent posting",
}

// WhyRecommended lists the reasons d suits p, strongest signals first.
func WhyRecommended(d domain.Deal, p domain.Profile, match float64) []string {
	var reasons []string

	if cat, ok := matchedCategory(d, p); ok {
		reasons = append(reasons, "Matches your interest in "+cat)
	}
	if kws := matchedKeywords(d.Title, p.Keywords); len(kws) > 0 {
		kws = kws[:min(len(kws), MaxReasonKeywords)]
		reasons = append(reasons, "Contains keywords: "+strings.Join(kws, ", "))
	}
	if brand, ok := matchedBrand(d, p); ok {
		reasons = append(reasons, "From preferred brand: "+brand)
	}
	if d.DiscountRate != nil && *d.DiscountRate >= HighDiscountRate {
		reasons = append(reasons, fmt.Sprintf("High discount rate: %d%%", *d.DiscountRate))
	}
	if match >= StrongMatchScore {
		reasons = append(reasons, "Strong match with your profile")
	}

	return reasons[:min(len(reasons), MaxReasons)]
}

// HotReasons returns the reasons attached to trending listings.
func HotReasons() []string {
	return append([]string(nil), hotReasons...)
}

// RiskNote summarises the risk cues in the title of d, or returns nil when
// there are none.
func RiskNote(d domain.Deal) *string {
	return riskNote(d.Title, RiskLabels)
}

func riskNote(title string, table []RiskLabel) *string {
	var labels []string
	for _, l := range table {
		if hasCategory(title, l.Category) {
			labels = append(labels, l.Label)
		}
	}
	if len(labels) == 0 {
		return nil
	}
	note := normalize.Truncate(strings.Join(labels, ", "), MaxRiskNoteLength)
	return &note
}
