package dedupe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/dealsense/pkg/dedupe"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

func TestFingerprint(t *testing.T) {
	t.Parallel()

	d := domain.Deal{
		Title:        "free-shipping Kobea 2-person tent flash-sale",
		Merchant:     "CampingKorea",
		PriceCurrent: 45000,
	}

	assert.Equal(t, "kobea 2person tent|campingkorea|45000", dedupe.Fingerprint(d))
}

func TestFingerprint_Invariance(t *testing.T) {
	t.Parallel()

	base := domain.Deal{Title: "Kobea 2-person tent", Merchant: "CampingKorea", PriceCurrent: 45000}

	tests := []struct {
		name string
		deal domain.Deal
	}{
		{
			name: "case differences",
			deal: domain.Deal{Title: "KOBEA 2-PERSON TENT", Merchant: "campingkorea", PriceCurrent: 45000},
		},
		{
			name: "merchant whitespace",
			deal: domain.Deal{Title: "Kobea 2-person tent", Merchant: " Camping Korea ", PriceCurrent: 45000},
		},
		{
			name: "noise words",
			deal: domain.Deal{Title: "[특가] Kobea 2-person tent free shipping", Merchant: "CampingKorea", PriceCurrent: 45000},
		},
		{
			name: "price drift within band",
			deal: domain.Deal{Title: "Kobea 2-person tent", Merchant: "CampingKorea", PriceCurrent: 46900},
		},
	}

	want := dedupe.Fingerprint(base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, dedupe.Fingerprint(tt.deal))
		})
	}
}

func TestFingerprint_DifferentBand(t *testing.T) {
	t.Parallel()

	a := domain.Deal{Title: "Kobea tent", Merchant: "CampingKorea", PriceCurrent: 45000}
	b := domain.Deal{Title: "Kobea tent", Merchant: "CampingKorea", PriceCurrent: 60000}

	assert.NotEqual(t, dedupe.Fingerprint(a), dedupe.Fingerprint(b))
}

type item struct {
	id    string
	key   string
	score float64
}

func keyOf(i item) string { return i.key }
func scoreOf(i item) float64 { return i.score }
func ids(items []item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.id)
	}
	return out
}

func TestDeduplicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []item
		want  []string
	}{
		{
			name:  "empty",
			items: nil,
			want:  []string{},
		},
		{
			name:  "higher score survives",
			items: []item{{"a", "fp", 0.62}, {"b", "fp", 0.81}},
			want:  []string{"b"},
		},
		{
			name:  "singletons pass through in order",
			items: []item{{"a", "x", 0.1}, {"b", "y", 0.9}, {"c", "z", 0.5}},
			want:  []string{"a", "b", "c"},
		},
		{
			name: "group discovery order not score order",
			items: []item{
				{"a", "x", 0.2},
				{"b", "y", 0.9},
				{"c", "x", 0.7},
			},
			want: []string{"c", "b"},
		},
		{
			name:  "equal scores keep earliest",
			items: []item{{"a", "fp", 0.5}, {"b", "fp", 0.5}},
			want:  []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := dedupe.Deduplicate(tt.items, keyOf, scoreOf)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestDeduplicate_SurvivorIsGroupMax(t *testing.T) {
	t.Parallel()

	items := []item{
		{"a", "g1", 0.3}, {"b", "g2", 0.4}, {"c", "g1", 0.9},
		{"d", "g3", 0.1}, {"e", "g2", 0.8}, {"f", "g1", 0.5},
	}
	input := append([]item(nil), items...)

	got := dedupe.Deduplicate(items, keyOf, scoreOf)
	require.Len(t, got, 3)

	for _, survivor := range got {
		for _, other := range items {
			if other.key == survivor.key {
				assert.GreaterOrEqual(t, survivor.score, other.score)
			}
		}
	}
	assert.Equal(t, input, items, "input must not be modified")
}
