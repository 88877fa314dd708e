// Package dedupe derives near-duplicate identity keys for deals and collapses
// groups that share one.
package dedupe

import (
	"strconv"
	"strings"

	"github.com/donaldgifford/dealsense/pkg/normalize"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// Fingerprint returns the identity key of d: normalized title, normalized
// merchant and price band joined by "|".
func Fingerprint(d domain.Deal) string {
	return strings.Join([]string{
		normalize.Title(d.Title),
		normalize.Merchant(d.Merchant),
		strconv.FormatInt(normalize.PriceBand(d.PriceCurrent), 10),
	}, "|")
}

// Deduplicate keeps one item per key. Groups are emitted in the order their
// key was first seen. Within a group the item with the highest score wins;
// on equal scores the earlier item wins. The input slice is not modified.
func Deduplicate[T any](items []T, key func(T) string, score func(T) float64) []T {
	if len(items) == 0 {
		return items
	}

	type best struct {
		item  T
		score float64
	}

	order := make([]string, 0, len(items))
	groups := make(map[string]*best, len(items))

	for _, item := range items {
		k := key(item)
		s := score(item)

		g, ok := groups[k]
		if !ok {
			groups[k] = &best{item: item, score: s}
			order = append(order, k)
			continue
		}
		if s > g.score {
			g.item = item
			g.score = s
		}
	}

	out := make([]T, 0, len(order))
	for _, k := range order {
		out = append(out, groups[k].item)
	}
	return out
}
