package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/dealsense/pkg/types"
)

func TestNewScore_Clamps(t *testing.T) {
	t.Parallel()

	s := NewScore(1.7, -0.2, ptr(3.0))
	assert.Equal(t, 1.0, s.Popularity)
	assert.Equal(t, 0.0, s.Trust)
	require.NotNil(t, s.Match)
	assert.Equal(t, 1.0, *s.Match)

	s = NewScore(0.5, 0.5, nil)
	assert.Nil(t, s.Match)
}

func TestCombined(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score domain.Score
		want  float64
	}{
		{name: "all ones", score: NewScore(1, 1, ptr(1.0)), want: 1.0},
		{name: "all zeros", score: NewScore(0, 0, ptr(0.0)), want: 0},
		{name: "no match", score: NewScore(1, 1, nil), want: 0.5},
		{name: "mixed", score: NewScore(0.5, 0.8, ptr(0.6)), want: 0.64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Combined(tt.score), 1e-9)
		})
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	type ranked struct {
		id    string
		value float64
	}
	items := []ranked{
		{"d", 0.5},
		{"b", 0.9},
		{"c", 0.5},
		{"a", 0.5},
		{"e", 0.1},
	}

	Rank(items, func(r ranked) float64 { return r.value }, func(r ranked) string { return r.id })

	got := make([]string, 0, len(items))
	for _, r := range items {
		got = append(got, r.id)
	}
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, got)
}
