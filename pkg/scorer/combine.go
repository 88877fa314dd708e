package score

import (
	"cmp"
	"slices"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// Ranking weights. Without a match the relevance share contributes nothing.
const (
	MatchShare      = 0.5
	TrustShare      = 0.3
	PopularityShare = 0.2
)

// NewScore builds a Score with every component clamped to [0,1]. A nil
// match leaves Match unset.
func NewScore(popularity, trust float64, match *float64) domain.Score {
	s := domain.Score{
		Popularity: Clamp(popularity),
		Trust:      Clamp(trust),
	}
	if match != nil {
		m := Clamp(*match)
		s.Match = &m
	}
	return s
}

// Combined blends s into a single ranking value.
func Combined(s domain.Score) float64 {
	v := TrustShare*s.Trust + PopularityShare*s.Popularity
	if s.Match != nil {
		v += MatchShare * *s.Match
	}
	return v
}

// Rank sorts items best first by combined score, breaking ties by
// ascending id.
func Rank[T any](items []T, combined func(T) float64, id func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := cmp.Compare(combined(b), combined(a)); c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})
}
